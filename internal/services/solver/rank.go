package solver

import (
	"sort"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// better reports whether a outranks b: higher score, then longer word, then
// lexicographically smaller word, then earlier discovery
func better(a, b model.Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if len(a.Path) != len(b.Path) {
		return len(a.Path) > len(b.Path)
	}
	if a.Word != b.Word {
		return a.Word < b.Word
	}
	return a.Order < b.Order
}

// Best returns the top-ranked candidate; false when there are none
func Best(candidates []model.Candidate) (model.Candidate, bool) {
	if len(candidates) == 0 {
		return model.Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best, true
}

// Rank returns a copy of candidates sorted best first
func Rank(candidates []model.Candidate) []model.Candidate {
	ranked := make([]model.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return better(ranked[i], ranked[j])
	})
	return ranked
}

// Apply plays c on grid: its path and bonus tiles are removed and the
// columns settle
func Apply(grid *model.Grid, c model.Candidate) error {
	if err := grid.Remove(c.Cleared()...); err != nil {
		return err
	}
	grid.Cascade()
	return nil
}
