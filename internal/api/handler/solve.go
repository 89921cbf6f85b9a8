package handler

import (
	"net/http"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/request"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// SolveHandler handles solving puzzles sent inline
type SolveHandler struct {
	engine
}

// NewSolveHandler creates a new solve handler
func NewSolveHandler(dictionaryService dictionary.ServiceInterface, controller *solver.Controller) *SolveHandler {
	return &SolveHandler{
		engine: engine{dictionary: dictionaryService, controller: controller},
	}
}

// Solve handles POST /api/v1/solve
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req request.PuzzleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	grid, err := req.Spec().Grid()
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

// Words handles POST /api/v1/words
func (h *SolveHandler) Words(w http.ResponseWriter, r *http.Request) {
	var req request.WordsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Limit < 0 {
		WriteError(w, NewInvalidRequestError("Limit must not be negative"))
		return
	}

	grid, err := req.Spec().Grid()
	if err != nil {
		WriteError(w, err)
		return
	}

	words, err := h.words(r.Context(), grid, req.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, words)
}
