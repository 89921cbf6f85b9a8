package model

import "sort"

// Path is an ordered sequence of distinct, successively adjacent positions
type Path []Position

// Contains reports whether pos is on the path
func (p Path) Contains(pos Position) bool {
	for _, q := range p {
		if q == pos {
			return true
		}
	}
	return false
}

// Valid reports whether the path has no repeats and every step is adjacent
func (p Path) Valid() bool {
	seen := make(map[Position]struct{}, len(p))
	for i, pos := range p {
		if _, ok := seen[pos]; ok {
			return false
		}
		seen[pos] = struct{}{}
		if i > 0 && !p[i-1].Adjacent(pos) {
			return false
		}
	}
	return true
}

// Candidate is a playable word found on the grid
type Candidate struct {
	Path       Path       `json:"path"`
	Word       string     `json:"word"`
	Score      int        `json:"score"`
	BonusTiles []Position `json:"bonus_tiles"` // Extra tiles cleared with the word, never on Path
	Order      int        `json:"order"`       // Discovery index within its round
}

// Cleared returns every position removed when the candidate is played
func (c Candidate) Cleared() []Position {
	result := make([]Position, 0, len(c.Path)+len(c.BonusTiles))
	result = append(result, c.Path...)
	result = append(result, c.BonusTiles...)
	return result
}

// SortPositions orders positions column-major, bottom-up
func SortPositions(positions []Position) {
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})
}
