package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/request"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// PuzzleHandler handles stored puzzle endpoints
type PuzzleHandler struct {
	engine
	puzzles puzzle.ServiceInterface
	logger  *slog.Logger
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(puzzleService puzzle.ServiceInterface, dictionaryService dictionary.ServiceInterface, controller *solver.Controller, logger *slog.Logger) *PuzzleHandler {
	return &PuzzleHandler{
		engine:  engine{dictionary: dictionaryService, controller: controller},
		puzzles: puzzleService,
		logger:  logger.With(slog.String("component", "puzzle-handler")),
	}
}

// Create handles POST /api/v1/puzzles
func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.PuzzleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.puzzles.Create(r.Context(), req.Spec())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/puzzles/"+url.PathEscape(string(p.ID)), response.PuzzleFromModel(p))
}

// List handles GET /api/v1/puzzles
func (h *PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.puzzles.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PuzzleListFromModel(puzzles))
}

// Get handles GET /api/v1/puzzles/{id}
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PuzzleID(mux.Vars(r)["id"])

	p, err := h.puzzles.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PuzzleFromModel(p))
}

// Delete handles DELETE /api/v1/puzzles/{id}
func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PuzzleID(mux.Vars(r)["id"])

	if err := h.puzzles.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Solve handles POST /api/v1/puzzles/{id}/solve
func (h *PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	id := model.PuzzleID(mux.Vars(r)["id"])

	grid, err := h.puzzles.Grid(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.solve(r.Context(), grid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Words handles GET /api/v1/puzzles/{id}/words
func (h *PuzzleHandler) Words(w http.ResponseWriter, r *http.Request) {
	id := model.PuzzleID(mux.Vars(r)["id"])

	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	grid, err := h.puzzles.Grid(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	words, err := h.words(r.Context(), grid, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, words)
}
