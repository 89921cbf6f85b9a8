package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/handler"
	apimiddleware "github.com/Alan-Collins/SpellTower-solver/internal/api/middleware"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/clock"
	"github.com/Alan-Collins/SpellTower-solver/internal/middleware"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Clock             clock.Clock
	DictionaryService dictionary.ServiceInterface
	PuzzleService     puzzle.ServiceInterface
	SolverController  *solver.Controller
	SolveTimeout      time.Duration // 0 leaves solves unbounded
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	dictionaryHandler := handler.NewDictionaryHandler(cfg.DictionaryService)
	solveHandler := handler.NewSolveHandler(cfg.DictionaryService, cfg.SolverController)
	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleService, cfg.DictionaryService, cfg.SolverController, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger, cfg.Clock)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)
	timeoutMiddleware := apimiddleware.Timeout(cfg.SolveTimeout)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/dictionary", dictionaryHandler.Get).Methods(http.MethodGet)

	// Search routes run under the solve deadline
	search := api.NewRoute().Subrouter()
	search.Use(timeoutMiddleware)
	search.HandleFunc("/solve", solveHandler.Solve).Methods(http.MethodPost)
	search.HandleFunc("/words", solveHandler.Words).Methods(http.MethodPost)
	search.HandleFunc("/puzzles/{id}/solve", puzzleHandler.Solve).Methods(http.MethodPost)
	search.HandleFunc("/puzzles/{id}/words", puzzleHandler.Words).Methods(http.MethodGet)
	search.HandleFunc("/puzzles/{id}/stream", puzzleHandler.Stream).Methods(http.MethodGet)

	// Puzzle store routes
	puzzles := api.PathPrefix("/puzzles").Subrouter()
	puzzles.HandleFunc("", puzzleHandler.Create).Methods(http.MethodPost)
	puzzles.HandleFunc("", puzzleHandler.List).Methods(http.MethodGet)
	puzzles.HandleFunc("/{id}", puzzleHandler.Get).Methods(http.MethodGet)
	puzzles.HandleFunc("/{id}", puzzleHandler.Delete).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
