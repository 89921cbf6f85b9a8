package model

import (
	"fmt"
	"strings"
)

// TileKind is the behaviour class of a tile
type TileKind int

const (
	TileNormal  TileKind = iota // Plain letter tile
	TileBonus                   // Adds its value when played or cleared next to a word
	TileBlocker                 // No letter; cleared only by long words
)

// String returns the canonical name of the kind
func (k TileKind) String() string {
	switch k {
	case TileNormal:
		return "normal"
	case TileBonus:
		return "bonus"
	case TileBlocker:
		return "blocker"
	default:
		return fmt.Sprintf("TileKind(%d)", int(k))
	}
}

// ParseTileKind parses a kind name. The colours used by the game screen
// (white, blue, grey) are accepted as aliases.
func ParseTileKind(s string) (TileKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "white":
		return TileNormal, nil
	case "bonus", "blue":
		return TileBonus, nil
	case "blocker", "grey", "gray":
		return TileBlocker, nil
	default:
		return 0, fmt.Errorf("%w: unknown tile kind %q", ErrInvalidTile, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k TileKind) MarshalText() ([]byte, error) {
	if k < TileNormal || k > TileBlocker {
		return nil, fmt.Errorf("%w: unknown tile kind %d", ErrInvalidTile, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *TileKind) UnmarshalText(text []byte) error {
	parsed, err := ParseTileKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Tile is one cell of the grid
type Tile struct {
	Letter rune // Upper-case A-Z, 0 for blockers and empty slots
	Kind   TileKind
	Alive  bool
}

// Playable reports whether the tile can be part of a word path
func (t Tile) Playable() bool {
	return t.Alive && t.Kind != TileBlocker
}

// TileSpec is a tile as delivered by the grid producer: a letter and a kind.
// A zero Letter on a non-blocker describes an empty slot.
type TileSpec struct {
	Letter string   `json:"letter" yaml:"letter"`
	Kind   TileKind `json:"kind" yaml:"kind"`
}

// IsLetter reports whether r is in the playable alphabet
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// NewTile validates a TileSpec and converts it to a Tile
func NewTile(spec TileSpec) (Tile, error) {
	if spec.Kind < TileNormal || spec.Kind > TileBlocker {
		return Tile{}, fmt.Errorf("%w: unknown tile kind %d", ErrInvalidTile, int(spec.Kind))
	}
	if spec.Kind == TileBlocker {
		return Tile{Kind: TileBlocker, Alive: true}, nil
	}

	letter := strings.ToUpper(strings.TrimSpace(spec.Letter))
	if letter == "" || letter == "." {
		return Tile{Kind: spec.Kind}, nil
	}
	runes := []rune(letter)
	if len(runes) != 1 || !IsLetter(runes[0]) {
		return Tile{}, fmt.Errorf("%w: letter %q", ErrInvalidTile, spec.Letter)
	}
	return Tile{Letter: runes[0], Kind: spec.Kind, Alive: true}, nil
}

// notation returns the single-character grid notation of a tile
func (t Tile) notation() byte {
	switch {
	case !t.Alive:
		return '.'
	case t.Kind == TileBlocker:
		return '#'
	case t.Kind == TileBonus:
		return byte(t.Letter) + ('a' - 'A')
	default:
		return byte(t.Letter)
	}
}

// tileFromNotation is the inverse of notation
func tileFromNotation(c rune) (Tile, error) {
	switch {
	case c == '.' || c == ' ':
		return Tile{}, nil
	case c == '#':
		return Tile{Kind: TileBlocker, Alive: true}, nil
	case c >= 'A' && c <= 'Z':
		return Tile{Letter: c, Kind: TileNormal, Alive: true}, nil
	case c >= 'a' && c <= 'z':
		return Tile{Letter: c - ('a' - 'A'), Kind: TileBonus, Alive: true}, nil
	default:
		return Tile{}, fmt.Errorf("%w: character %q", ErrInvalidTile, c)
	}
}
