package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alan-Collins/SpellTower-solver/internal/config"
	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/clock"
	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/random"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/generator"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/scoring"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/search"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
	"github.com/Alan-Collins/SpellTower-solver/internal/storage"
	"github.com/Alan-Collins/SpellTower-solver/internal/storage/memory"
	redisstorage "github.com/Alan-Collins/SpellTower-solver/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	SearchService     *search.Service
	SolverController  *solver.Controller
	PuzzleService     *puzzle.Service
	GeneratorService  *generator.Service
}

// Config holds configuration for the application factory
type Config struct {
	// ScoringTable prices words (optional)
	// If nil, defaults to scoring.DefaultTable()
	ScoringTable *scoring.Table
	// Search bounds the word search (optional)
	// If zero value, defaults to search.DefaultConfig()
	Search search.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// ConfigFrom builds a factory Config from application settings, reading the
// scoring table file when one is configured
func ConfigFrom(c *config.Config, logger *slog.Logger) (Config, error) {
	cfg := Config{
		Search: search.Config{
			MaxPathLength: c.Search.MaxPath,
			MinWordLength: c.Search.MinLength,
			Workers:       c.Search.Workers,
		},
		Logger:      logger,
		StorageType: c.Storage.Type,
	}

	if c.Scoring != "" {
		table, err := loadScoringTable(c.Scoring)
		if err != nil {
			return Config{}, err
		}
		cfg.ScoringTable = &table
	}

	if c.Storage.Type == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.RedisURL
		redisCfg.PuzzleTTL = c.Storage.PuzzleTTL
		cfg.RedisConfig = &redisCfg
	}

	return cfg, nil
}

func loadScoringTable(path string) (scoring.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return scoring.Table{}, fmt.Errorf("opening scoring table: %w", err)
	}
	defer f.Close()

	table, err := scoring.LoadTable(f)
	if err != nil {
		return scoring.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	table := scoring.DefaultTable()
	if cfg.ScoringTable != nil {
		if err := cfg.ScoringTable.Validate(); err != nil {
			return nil, err
		}
		table = *cfg.ScoringTable
	}

	searchCfg := cfg.Search
	if searchCfg == (search.Config{}) {
		searchCfg = search.DefaultConfig()
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, table, searchCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, table scoring.Table, searchCfg search.Config, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store, logger)
	scoringService := scoring.New(table)
	searchService := search.New(scoringService, searchCfg, logger)
	solverController := solver.NewController(searchService, clk, logger)
	puzzleService := puzzle.New(store, clk, logger)
	generatorService := generator.New(rnd, generator.EnglishBag(), logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		SearchService:     searchService,
		SolverController:  solverController,
		PuzzleService:     puzzleService,
		GeneratorService:  generatorService,
	}
}

// LoadDictionary loads the word list from path. The copy kept in storage is
// used only when no path is configured; a broken file is always an error.
func (a *App) LoadDictionary(ctx context.Context, path string) error {
	if path != "" {
		return a.DictionaryService.LoadFromFile(ctx, path)
	}
	return a.DictionaryService.LoadFromStorage(ctx)
}

// Close releases storage connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
