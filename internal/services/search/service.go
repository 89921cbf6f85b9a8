package search

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
)

// cancelCheckInterval is how many DFS steps run between context checks
const cancelCheckInterval = 1024

// Config controls the extent of the search
type Config struct {
	// MaxPathLength caps word length; 0 means the alive tile count
	MaxPathLength int

	// MinWordLength is the shortest word emitted
	MinWordLength int

	// Workers is the number of start tiles explored concurrently; values
	// below 2 run sequentially
	Workers int
}

// DefaultConfig returns the standard search settings
func DefaultConfig() Config {
	return Config{
		MinWordLength: 2,
		Workers:       1,
	}
}

// Scorer prices a path on a grid
type Scorer interface {
	Score(path model.Path, grid *model.Grid) (int, []model.Position, error)
}

// Service finds every dictionary word traceable on a grid
type Service struct {
	scorer Scorer
	cfg    Config
	logger *slog.Logger
}

// New creates a new search Service
func New(scorer Scorer, cfg Config, logger *slog.Logger) *Service {
	if cfg.MinWordLength < 2 {
		cfg.MinWordLength = 2
	}
	return &Service{
		scorer: scorer,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "search")),
	}
}

// Config returns the active settings
func (s *Service) Config() Config {
	return s.cfg
}

// FindAll returns every scored candidate on grid. The search reads a private
// snapshot, so grid is never touched. Output order is the discovery order:
// start tiles column-major bottom-up, then neighbour order. The same grid
// and index always give the same slice, whatever the worker count.
func (s *Service) FindAll(ctx context.Context, grid *model.Grid, index *dictionary.Index) ([]model.Candidate, error) {
	if index == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	if index.Len() == 0 {
		return nil, nil
	}

	snapshot := grid.Clone()
	starts := lo.Filter(snapshot.AlivePositions(), func(pos model.Position, _ int) bool {
		tile, _ := snapshot.At(pos)
		return tile.Playable()
	})

	maxLen := s.cfg.MaxPathLength
	if maxLen <= 0 || maxLen > len(starts) {
		maxLen = len(starts)
	}

	perStart := make([][]model.Candidate, len(starts))
	explore := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		w := newWalker(ctx, snapshot, s.scorer, s.cfg.MinWordLength, maxLen)
		if err := w.visit(starts[i], index.Root()); err != nil {
			return err
		}
		perStart[i] = w.found
		return nil
	}

	if s.cfg.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)
		for i := range starts {
			g.Go(func() error {
				return explore(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range starts {
			if err := explore(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	candidates := lo.Flatten(perStart)
	for i := range candidates {
		candidates[i].Order = i
	}

	s.logger.Debug("search complete",
		slog.Int("start_tiles", len(starts)),
		slog.Int("max_path_length", maxLen),
		slog.Int("candidates", len(candidates)),
	)

	return candidates, nil
}

// walker runs one depth-first exploration from a single start tile
type walker struct {
	ctx    context.Context
	grid   *model.Grid
	scorer Scorer
	minLen int
	maxLen int

	height  int
	visited []bool
	path    model.Path
	letters []rune
	steps   int
	found   []model.Candidate
}

func newWalker(ctx context.Context, grid *model.Grid, scorer Scorer, minLen, maxLen int) *walker {
	height := grid.Height()
	return &walker{
		ctx:     ctx,
		grid:    grid,
		scorer:  scorer,
		minLen:  minLen,
		maxLen:  maxLen,
		height:  height,
		visited: make([]bool, grid.Width()*height),
		path:    make(model.Path, 0, maxLen),
		letters: make([]rune, 0, maxLen),
	}
}

func (w *walker) slot(pos model.Position) int {
	return pos.Col*w.height + pos.Row
}

func (w *walker) visit(pos model.Position, node *dictionary.Node) error {
	tile, err := w.grid.At(pos)
	if err != nil {
		return err
	}
	next := node.Child(tile.Letter)
	if next == nil {
		return nil
	}

	w.steps++
	if w.steps%cancelCheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}

	w.visited[w.slot(pos)] = true
	w.path = append(w.path, pos)
	w.letters = append(w.letters, tile.Letter)
	defer func() {
		w.visited[w.slot(pos)] = false
		w.path = w.path[:len(w.path)-1]
		w.letters = w.letters[:len(w.letters)-1]
	}()

	if next.IsWord() && len(w.path) >= w.minLen {
		if err := w.emit(); err != nil {
			return err
		}
	}

	if len(w.path) >= w.maxLen {
		return nil
	}
	for _, n := range w.grid.Neighbors(pos) {
		if w.visited[w.slot(n)] {
			continue
		}
		if t, _ := w.grid.At(n); !t.Playable() {
			continue
		}
		if err := w.visit(n, next); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) emit() error {
	path := make(model.Path, len(w.path))
	copy(path, w.path)

	score, bonus, err := w.scorer.Score(path, w.grid)
	if err != nil {
		return err
	}
	w.found = append(w.found, model.Candidate{
		Path:       path,
		Word:       string(w.letters),
		Score:      score,
		BonusTiles: bonus,
	})
	return nil
}
