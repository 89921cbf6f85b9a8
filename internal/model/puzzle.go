package model

import "time"

// PuzzleID identifies a stored puzzle; it is the grid fingerprint
type PuzzleID string

// Puzzle is an input grid kept for later solving
type Puzzle struct {
	ID        PuzzleID
	Name      string
	Rows      []string // Grid notation, top row first
	CreatedAt time.Time
}

// Grid builds a fresh grid from the stored notation
func (p *Puzzle) Grid() (*Grid, error) {
	return ParseRows(p.Rows)
}
