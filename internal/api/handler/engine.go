package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// DefaultWordLimit is the number of candidates returned when no limit is given
const DefaultWordLimit = 50

// engine runs solves and rankings against the loaded dictionary
type engine struct {
	dictionary dictionary.ServiceInterface
	controller *solver.Controller
}

func (e engine) solve(ctx context.Context, grid *model.Grid) (response.SolveResult, error) {
	index, err := e.dictionary.Index()
	if err != nil {
		return response.SolveResult{}, err
	}
	result, err := e.controller.Solve(ctx, grid, index)
	if err != nil {
		return response.SolveResult{}, err
	}
	return response.SolveResultFromModel(result), nil
}

func (e engine) words(ctx context.Context, grid *model.Grid, limit int) (response.Words, error) {
	index, err := e.dictionary.Index()
	if err != nil {
		return response.Words{}, err
	}
	if limit == 0 {
		limit = DefaultWordLimit
	}
	ranked, total, err := e.controller.Candidates(ctx, grid, index, limit)
	if err != nil {
		return response.Words{}, err
	}
	return response.WordsFromModel(ranked, total), nil
}

// parseLimit reads the limit query parameter; absent means the default
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultWordLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, NewInvalidRequestError(fmt.Sprintf("Invalid limit %q", raw))
	}
	return limit, nil
}
