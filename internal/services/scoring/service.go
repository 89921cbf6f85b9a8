package scoring

import (
	"fmt"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// Service scores word paths against a grid.
//
// The rule is an approximation of the game's own scoring, which is not
// published: (path letters + cleared bonus letters) * Multiplier(len).
// Bonus-kind tiles on the path count twice. Tune it through Table.
type Service struct {
	table Table
}

// New creates a new ScoringService
func New(table Table) *Service {
	return &Service{
		table: table,
	}
}

// Table returns the active scoring table
func (s *Service) Table() Table {
	return s.table
}

// Score computes the score of playing path on grid and the extra tiles the
// play clears. It reads grid and nothing else.
func (s *Service) Score(path model.Path, grid *model.Grid) (int, []model.Position, error) {
	if len(path) == 0 {
		return 0, nil, nil
	}

	letters := 0
	for _, pos := range path {
		tile, err := grid.At(pos)
		if err != nil {
			return 0, nil, err
		}
		if !tile.Playable() {
			return 0, nil, fmt.Errorf("%w: %s is not playable", model.ErrInvalidTile, pos)
		}
		value := s.table.LetterValue(tile.Letter)
		if tile.Kind == model.TileBonus {
			value *= 2
		}
		letters += value
	}

	bonus := s.BonusTiles(path, grid)
	for _, pos := range bonus {
		tile, _ := grid.At(pos)
		letters += s.table.LetterValue(tile.Letter)
	}

	return letters * s.table.Multiplier(len(path)), bonus, nil
}

// BonusTiles returns the alive tiles off the path that playing it clears:
// adjacent Bonus tiles, plus every adjacent tile once the word reaches
// LongWordLength. The result is sorted column-major, bottom-up.
func (s *Service) BonusTiles(path model.Path, grid *model.Grid) []model.Position {
	long := s.table.LongWordLength > 0 && len(path) >= s.table.LongWordLength

	seen := make(map[model.Position]struct{})
	var result []model.Position
	for _, pos := range path {
		for _, n := range grid.Neighbors(pos) {
			if _, ok := seen[n]; ok || path.Contains(n) {
				continue
			}
			tile, _ := grid.At(n)
			if tile.Kind == model.TileBonus || long {
				seen[n] = struct{}{}
				result = append(result, n)
			}
		}
	}
	model.SortPositions(result)
	return result
}

// ServiceInterface is satisfied by Service
type ServiceInterface interface {
	Score(path model.Path, grid *model.Grid) (int, []model.Position, error)
	Table() Table
}

var _ ServiceInterface = (*Service)(nil)
