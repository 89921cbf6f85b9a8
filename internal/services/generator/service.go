package generator

import (
	"fmt"
	"log/slog"

	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/random"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// Config shapes a generated grid
type Config struct {
	Width          int
	Height         int
	BonusPercent   int // Chance a letter tile is a bonus tile
	BlockerPercent int // Chance a slot holds a blocker
}

// DefaultConfig returns the dimensions of the classic tower
func DefaultConfig() Config {
	return Config{
		Width:          8,
		Height:         12,
		BonusPercent:   5,
		BlockerPercent: 4,
	}
}

// Validate checks the dimensions and percentages
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", model.ErrInvalidConfig, c.Width, c.Height)
	}
	if c.BonusPercent < 0 || c.BlockerPercent < 0 || c.BonusPercent+c.BlockerPercent > 100 {
		return fmt.Errorf("%w: bonus %d%% and blocker %d%% must be non-negative and sum to at most 100",
			model.ErrInvalidConfig, c.BonusPercent, c.BlockerPercent)
	}
	return nil
}

// Service produces random puzzles
type Service struct {
	random random.Random
	bag    *LetterBag
	logger *slog.Logger
}

// New creates a new generator Service drawing from bag
func New(rnd random.Random, bag *LetterBag, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		bag:    bag,
		logger: logger.With(slog.String("component", "generator")),
	}
}

// GenerateRows returns a full grid in notation, top row first. Each slot
// rolls once for its kind; letter tiles then draw from the bag.
func (s *Service) GenerateRows(cfg Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows := make([]string, cfg.Height)
	for y := range rows {
		line := make([]byte, cfg.Width)
		for x := range line {
			line[x] = s.tile(cfg)
		}
		rows[y] = string(line)
	}

	s.logger.Debug("grid generated",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
	)
	return rows, nil
}

func (s *Service) tile(cfg Config) byte {
	roll := s.random.Intn(100)
	if roll < cfg.BlockerPercent {
		return '#'
	}
	letter := byte(s.bag.Draw(s.random))
	if roll < cfg.BlockerPercent+cfg.BonusPercent {
		return letter + ('a' - 'A')
	}
	return letter
}

// Generate returns a random settled grid
func (s *Service) Generate(cfg Config) (*model.Grid, error) {
	rows, err := s.GenerateRows(cfg)
	if err != nil {
		return nil, err
	}
	return model.ParseRows(rows)
}

// Name returns a random puzzle name
func (s *Service) Name() string {
	return "random-" + s.random.String(6, "abcdefghijklmnopqrstuvwxyz0123456789")
}
