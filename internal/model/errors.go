package model

import "errors"

// Common errors used across the application
var (
	// Dictionary errors
	ErrDictionary          = errors.New("dictionary unavailable")
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")

	// Grid errors
	ErrInvalidTile = errors.New("invalid tile")
	ErrOutOfBounds = errors.New("position out of bounds")

	// Scoring errors
	ErrInvalidScoringTable = errors.New("invalid scoring table")

	// Solver errors
	ErrNoProgress = errors.New("round removed no tiles")

	// Puzzle errors
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
