package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Alan-Collins/SpellTower-solver/internal/api"
	"github.com/Alan-Collins/SpellTower-solver/internal/config"
	"github.com/Alan-Collins/SpellTower-solver/internal/factory"
)

func main() {
	flags := pflag.NewFlagSet("spelltower-server", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML config file")
	flags.String("dictionary", "", "path to the word list")
	flags.Int("port", 0, "port to listen on")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, map[string]*pflag.Flag{
		"dictionary":  flags.Lookup("dictionary"),
		"server.port": flags.Lookup("port"),
	})
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from application settings
	factoryCfg, err := factory.ConfigFrom(cfg, logger)
	if err != nil {
		logger.Error("failed to build configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// Load dictionary; no round can be played without one
	if err := app.LoadDictionary(context.Background(), cfg.Dictionary); err != nil {
		logger.Error("failed to load dictionary",
			slog.String("path", cfg.Dictionary),
			slog.String("error", err.Error()))
		app.Close()
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Clock:             app.Clock,
		DictionaryService: app.DictionaryService,
		PuzzleService:     app.PuzzleService,
		SolverController:  app.SolverController,
		SolveTimeout:      cfg.Server.SolveTimeout,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	// Create server
	server := api.NewServer(mux, api.ServerConfigFrom(cfg.Server), logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
