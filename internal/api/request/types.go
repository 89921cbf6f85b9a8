package request

import (
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

// PuzzleRequest carries a grid, either as notation rows or as tile specs,
// top row first
type PuzzleRequest struct {
	Name  string             `json:"name,omitempty"`
	Rows  []string           `json:"rows,omitempty"`
	Tiles [][]model.TileSpec `json:"tiles,omitempty"`
}

// Spec converts the request to a puzzle spec
func (r PuzzleRequest) Spec() puzzle.Spec {
	return puzzle.Spec{
		Name:  r.Name,
		Rows:  r.Rows,
		Tiles: r.Tiles,
	}
}

// FromSpec builds a request from a puzzle spec
func FromSpec(spec puzzle.Spec) PuzzleRequest {
	return PuzzleRequest{
		Name:  spec.Name,
		Rows:  spec.Rows,
		Tiles: spec.Tiles,
	}
}

// WordsRequest is the request body for ranking the words on a grid
type WordsRequest struct {
	PuzzleRequest
	Limit int `json:"limit,omitempty"`
}
