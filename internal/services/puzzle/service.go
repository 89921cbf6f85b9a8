package puzzle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/clock"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/storage"
)

// Service stores input puzzles for later solving
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new PuzzleService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "puzzle")),
	}
}

// Create validates spec and stores it. The ID is the settled grid's
// fingerprint, so saving the same grid twice returns the first puzzle.
func (s *Service) Create(ctx context.Context, spec Spec) (*model.Puzzle, error) {
	grid, err := spec.Grid()
	if err != nil {
		return nil, err
	}

	id := model.PuzzleID(grid.Fingerprint())
	existing, err := s.storage.GetPuzzle(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrPuzzleNotFound) {
		return nil, err
	}

	name := spec.Name
	if name == "" {
		name = string(id[:8])
	}

	puzzle := &model.Puzzle{
		ID:        id,
		Name:      name,
		Rows:      grid.Notation(),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SavePuzzle(ctx, puzzle); err != nil {
		s.logger.Error("failed to save puzzle",
			slog.String("puzzle_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("puzzle created",
		slog.String("puzzle_id", string(id)),
		slog.String("name", name),
		slog.Int("width", grid.Width()),
		slog.Int("height", grid.Height()),
	)
	return puzzle, nil
}

// Get retrieves a puzzle by ID
func (s *Service) Get(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return s.storage.GetPuzzle(ctx, id)
}

// Grid loads a puzzle's grid
func (s *Service) Grid(ctx context.Context, id model.PuzzleID) (*model.Grid, error) {
	puzzle, err := s.storage.GetPuzzle(ctx, id)
	if err != nil {
		return nil, err
	}
	return puzzle.Grid()
}

// List returns every stored puzzle, oldest first
func (s *Service) List(ctx context.Context) ([]*model.Puzzle, error) {
	return s.storage.ListPuzzles(ctx)
}

// Delete removes a puzzle
func (s *Service) Delete(ctx context.Context, id model.PuzzleID) error {
	if _, err := s.storage.GetPuzzle(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeletePuzzle(ctx, id); err != nil {
		return err
	}
	s.logger.Info("puzzle deleted", slog.String("puzzle_id", string(id)))
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, spec Spec) (*model.Puzzle, error)
	Get(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	Grid(ctx context.Context, id model.PuzzleID) (*model.Grid, error)
	List(ctx context.Context) ([]*model.Puzzle, error)
	Delete(ctx context.Context, id model.PuzzleID) error
}

var _ ServiceInterface = (*Service)(nil)
