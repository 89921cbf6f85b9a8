package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/apierr"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/sse"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// Stream handles GET /api/v1/puzzles/{id}/stream. Each played round is
// sent as a "round" event, then the full result as "done". Failures after
// the stream has started arrive as an "error" event.
func (h *PuzzleHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := model.PuzzleID(mux.Vars(r)["id"])
	logger := h.logger.With(slog.String("puzzle_id", string(id)))

	grid, err := h.puzzles.Grid(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	index, err := h.dictionary.Index()
	if err != nil {
		WriteError(w, err)
		return
	}

	stream, err := sse.Start(w)
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	var sendErr error
	result, err := h.controller.Solve(r.Context(), grid, index, solver.WithOnRound(func(round solver.Round) {
		if sendErr == nil {
			sendErr = stream.Send(sse.EventRound, response.RoundFromModel(round))
		}
	}))
	if sendErr != nil {
		logger.Info("solve stream closed by client", slog.String("error", sendErr.Error()))
		return
	}
	if err != nil {
		logger.Warn("solve stream failed", slog.String("error", err.Error()))
		_ = stream.Send(sse.EventError, apierr.FromError(err))
		return
	}

	_ = stream.Send(sse.EventDone, response.SolveResultFromModel(result))
}
