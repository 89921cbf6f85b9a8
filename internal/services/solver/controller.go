package solver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/clock"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
)

// State is the phase of a solve session
type State string

const (
	StateSearching State = "searching" // Looking for the next word
	StateDone      State = "done"      // No playable word remains
)

// Searcher finds the candidates on a grid
type Searcher interface {
	FindAll(ctx context.Context, grid *model.Grid, index *dictionary.Index) ([]model.Candidate, error)
}

// Round is the outcome of one Searching iteration
type Round struct {
	Number         int             `json:"number"`
	Candidate      model.Candidate `json:"candidate"`
	Board          *model.Grid     `json:"-"` // Grid the word was played on
	Grid           *model.Grid     `json:"-"` // Settled grid after the play
	TotalScore     int             `json:"total_score"`
	CandidateCount int             `json:"candidate_count"`
}

// Result is the final outcome of a solve
type Result struct {
	TotalScore int
	History    []model.Candidate
	Rounds     []Round
	FinalGrid  *model.Grid
	Elapsed    time.Duration
}

// Words returns the played words in order
func (r *Result) Words() []string {
	return lo.Map(r.History, func(c model.Candidate, _ int) string {
		return c.Word
	})
}

// Session is the mutable state of one solve
type Session struct {
	grid       *model.Grid
	index      *dictionary.Index
	state      State
	totalScore int
	history    []model.Candidate
	rounds     []Round
	maxRounds  int
}

// NewSession starts a session on a private copy of grid
func NewSession(grid *model.Grid, index *dictionary.Index) *Session {
	g := grid.Clone()
	return &Session{
		grid:      g,
		index:     index,
		state:     StateSearching,
		maxRounds: g.AliveCount(),
	}
}

// State returns the current phase
func (s *Session) State() State {
	return s.state
}

// TotalScore returns the running score
func (s *Session) TotalScore() int {
	return s.totalScore
}

// History returns the candidates played so far
func (s *Session) History() []model.Candidate {
	return append([]model.Candidate(nil), s.history...)
}

// Grid returns a snapshot of the current grid
func (s *Session) Grid() *model.Grid {
	return s.grid.Clone()
}

// Option configures a Solve call
type Option func(*options)

type options struct {
	onRound func(Round)
}

// WithOnRound registers an observer called after every round
func WithOnRound(fn func(Round)) Option {
	return func(o *options) {
		o.onRound = fn
	}
}

// Controller drives the greedy solve loop
type Controller struct {
	searcher Searcher
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new solve Controller
func NewController(searcher Searcher, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		searcher: searcher,
		clock:    clock,
		logger:   logger.With(slog.String("component", "solver")),
	}
}

// Step runs one Searching iteration. It returns nil once the session is Done.
func (c *Controller) Step(ctx context.Context, sess *Session) (*Round, error) {
	if sess.state == StateDone {
		return nil, nil
	}

	if sess.index == nil || sess.index.Len() == 0 || sess.grid.AliveCount() == 0 {
		c.finish(sess)
		return nil, nil
	}

	if len(sess.rounds) >= sess.maxRounds {
		return nil, fmt.Errorf("%w: exceeded %d rounds", model.ErrNoProgress, sess.maxRounds)
	}

	candidates, err := c.searcher.FindAll(ctx, sess.grid, sess.index)
	if err != nil {
		return nil, err
	}

	best, ok := Best(candidates)
	if !ok {
		c.finish(sess)
		return nil, nil
	}

	board := sess.grid.Clone()
	before := board.AliveCount()
	if err := Apply(sess.grid, best); err != nil {
		return nil, err
	}
	if sess.grid.AliveCount() >= before {
		return nil, fmt.Errorf("%w: %q at %v", model.ErrNoProgress, best.Word, best.Path)
	}

	sess.totalScore += best.Score
	sess.history = append(sess.history, best)

	round := Round{
		Number:         len(sess.rounds) + 1,
		Candidate:      best,
		Board:          board,
		Grid:           sess.grid.Clone(),
		TotalScore:     sess.totalScore,
		CandidateCount: len(candidates),
	}
	sess.rounds = append(sess.rounds, round)

	c.logger.Debug("round played",
		slog.Int("round", round.Number),
		slog.String("word", best.Word),
		slog.Int("score", best.Score),
		slog.Int("bonus_tiles", len(best.BonusTiles)),
		slog.Int("candidates", len(candidates)),
	)

	return &round, nil
}

func (c *Controller) finish(sess *Session) {
	sess.state = StateDone
	c.logger.Debug("solve finished",
		slog.Int("rounds", len(sess.rounds)),
		slog.Int("total_score", sess.totalScore),
	)
}

// Solve runs rounds until no word remains
func (c *Controller) Solve(ctx context.Context, grid *model.Grid, index *dictionary.Index, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	start := c.clock.Now()
	sess := NewSession(grid, index)

	for sess.State() != StateDone {
		round, err := c.Step(ctx, sess)
		if err != nil {
			return nil, err
		}
		if round != nil && o.onRound != nil {
			o.onRound(*round)
		}
	}

	result := &Result{
		TotalScore: sess.totalScore,
		History:    sess.History(),
		Rounds:     append([]Round(nil), sess.rounds...),
		FinalGrid:  sess.Grid(),
		Elapsed:    c.clock.Since(start),
	}

	c.logger.Info("solve complete",
		slog.Int("rounds", len(result.Rounds)),
		slog.Int("total_score", result.TotalScore),
		slog.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// Candidates ranks the words playable on grid without playing any. A
// positive limit truncates the ranking; the total before truncation is
// returned alongside.
func (c *Controller) Candidates(ctx context.Context, grid *model.Grid, index *dictionary.Index, limit int) ([]model.Candidate, int, error) {
	candidates, err := c.searcher.FindAll(ctx, grid, index)
	if err != nil {
		return nil, 0, err
	}
	ranked := Rank(candidates)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, len(candidates), nil
}
