package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/config"
	"github.com/Alan-Collins/SpellTower-solver/internal/factory"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

// errNeedsServer is returned by commands that only work against a server
var errNeedsServer = errors.New("this command needs --server")

// Backend runs solves, either in-process or on a server
type Backend interface {
	Solve(ctx context.Context, spec puzzle.Spec) (response.SolveResult, error)
	Words(ctx context.Context, spec puzzle.Spec, limit int) (response.Words, error)
}

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*localBackend)(nil)
)

// localBackend wires the services in-process and loads the dictionary on
// first use
type localBackend struct {
	cfg *config.Config
	app *factory.App
}

func newLocalBackend(cfg *config.Config, logger *slog.Logger) (*localBackend, error) {
	factoryCfg, err := factory.ConfigFrom(cfg, logger)
	if err != nil {
		return nil, err
	}
	app, err := factory.New(factoryCfg)
	if err != nil {
		return nil, err
	}
	return &localBackend{cfg: cfg, app: app}, nil
}

func (b *localBackend) index(ctx context.Context) (*dictionary.Index, error) {
	if !b.app.DictionaryService.IsLoaded() {
		if err := b.app.LoadDictionary(ctx, b.cfg.Dictionary); err != nil {
			return nil, err
		}
	}
	return b.app.DictionaryService.Index()
}

// Solve plays spec to completion
func (b *localBackend) Solve(ctx context.Context, spec puzzle.Spec) (response.SolveResult, error) {
	grid, err := spec.Grid()
	if err != nil {
		return response.SolveResult{}, err
	}
	index, err := b.index(ctx)
	if err != nil {
		return response.SolveResult{}, err
	}

	result, err := b.app.SolverController.Solve(ctx, grid, index)
	if err != nil {
		return response.SolveResult{}, err
	}
	return response.SolveResultFromModel(result), nil
}

// Words ranks the candidates on spec's grid
func (b *localBackend) Words(ctx context.Context, spec puzzle.Spec, limit int) (response.Words, error) {
	grid, err := spec.Grid()
	if err != nil {
		return response.Words{}, err
	}
	index, err := b.index(ctx)
	if err != nil {
		return response.Words{}, err
	}

	ranked, total, err := b.app.SolverController.Candidates(ctx, grid, index, limit)
	if err != nil {
		return response.Words{}, err
	}
	return response.WordsFromModel(ranked, total), nil
}

// Close releases the backend's storage
func (b *localBackend) Close() error {
	return b.app.Close()
}

// currentBackend returns the server client when --server is set, otherwise
// an in-process backend
func currentBackend() (Backend, error) {
	if client != nil {
		return client, nil
	}
	if local == nil {
		b, err := newLocalBackend(cfg.App, logger)
		if err != nil {
			return nil, err
		}
		local = b
	}
	return local, nil
}

// requireClient returns the server client or errNeedsServer
func requireClient() (*Client, error) {
	if client == nil {
		return nil, errNeedsServer
	}
	return client, nil
}
