package storage

import (
	"context"
	"sort"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Puzzle operations
	SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error
	GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	ListPuzzles(ctx context.Context) ([]*model.Puzzle, error)
	DeletePuzzle(ctx context.Context, id model.PuzzleID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}

// SortPuzzles orders puzzles oldest first, then by ID
func SortPuzzles(puzzles []*model.Puzzle) {
	sort.Slice(puzzles, func(i, j int) bool {
		a, b := puzzles[i], puzzles[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
