package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Position identifies a tile slot on the grid
type Position struct {
	Col int `json:"col" yaml:"col"` // 0-indexed from left
	Row int `json:"row" yaml:"row"` // 0-indexed from the bottom of the column
}

// Adjacent reports whether q touches p in any of the 8 directions
func (p Position) Adjacent(q Position) bool {
	if p == q {
		return false
	}
	dc, dr := p.Col-q.Col, p.Row-q.Row
	return dc >= -1 && dc <= 1 && dr >= -1 && dr <= 1
}

// Less orders positions column-major, bottom-up
func (p Position) Less(q Position) bool {
	if p.Col != q.Col {
		return p.Col < q.Col
	}
	return p.Row < q.Row
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// neighborOffsets is the fixed visiting order used by Neighbors
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is the game board: a fixed number of columns, each an ordered
// sequence of tiles from bottom to top.
type Grid struct {
	columns [][]Tile
	version uint64
}

// NewGrid builds a grid from bottom-to-top columns and settles it
func NewGrid(columns [][]Tile) (*Grid, error) {
	cols := make([][]Tile, len(columns))
	for c, column := range columns {
		cols[c] = make([]Tile, len(column))
		for r, tile := range column {
			if tile.Alive && tile.Kind != TileBlocker && !IsLetter(tile.Letter) {
				return nil, fmt.Errorf("%w: letter %q at %s", ErrInvalidTile, tile.Letter, Position{Col: c, Row: r})
			}
			if tile.Kind < TileNormal || tile.Kind > TileBlocker {
				return nil, fmt.Errorf("%w: kind %d at %s", ErrInvalidTile, int(tile.Kind), Position{Col: c, Row: r})
			}
			if tile.Kind == TileBlocker {
				tile.Letter = 0
			}
			cols[c][r] = tile
		}
	}

	g := &Grid{columns: cols}
	g.Cascade()
	g.version = 0
	return g, nil
}

// GridFromRows builds a grid from a rectangular array of tile specs given
// top row first, the way a screenshot reads.
func GridFromRows(rows [][]TileSpec) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(nil)
	}
	width := len(rows[0])
	height := len(rows)
	columns := make([][]Tile, width)
	for c := range columns {
		columns[c] = make([]Tile, height)
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidTile, y, len(row), width)
		}
		for x, spec := range row {
			tile, err := NewTile(spec)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			columns[x][height-1-y] = tile
		}
	}
	return NewGrid(columns)
}

// ParseGrid reads grid notation: rows top to bottom separated by newlines,
// one character per tile. Upper-case letters are normal tiles, lower-case
// letters bonus tiles, '#' blockers and '.' empty slots.
func ParseGrid(text string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return ParseRows(lines)
}

// ParseRows reads grid notation already split into rows
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(nil)
	}
	width := len([]rune(rows[0]))
	height := len(rows)
	columns := make([][]Tile, width)
	for c := range columns {
		columns[c] = make([]Tile, height)
	}

	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidTile, y, len(cells), width)
		}
		for x, c := range cells {
			tile, err := tileFromNotation(c)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			columns[x][height-1-y] = tile
		}
	}
	return NewGrid(columns)
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return len(g.columns)
}

// Height returns the number of slots in the tallest column
func (g *Grid) Height() int {
	h := 0
	for _, col := range g.columns {
		if len(col) > h {
			h = len(col)
		}
	}
	return h
}

// EffectiveWidth is the width, or 0 once every column is empty
func (g *Grid) EffectiveWidth() int {
	if g.AliveCount() == 0 {
		return 0
	}
	return len(g.columns)
}

// Version counts state-changing mutations since construction
func (g *Grid) Version() uint64 {
	return g.version
}

// InBounds reports whether pos addresses an existing slot
func (g *Grid) InBounds(pos Position) bool {
	return pos.Col >= 0 && pos.Col < len(g.columns) &&
		pos.Row >= 0 && pos.Row < len(g.columns[pos.Col])
}

// At returns the tile at pos
func (g *Grid) At(pos Position) (Tile, error) {
	if !g.InBounds(pos) {
		return Tile{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return g.columns[pos.Col][pos.Row], nil
}

// Neighbors returns the in-bounds alive positions adjacent to pos, in a
// fixed order
func (g *Grid) Neighbors(pos Position) []Position {
	result := make([]Position, 0, 8)
	for _, off := range neighborOffsets {
		n := Position{Col: pos.Col + off[0], Row: pos.Row + off[1]}
		if g.InBounds(n) && g.columns[n.Col][n.Row].Alive {
			result = append(result, n)
		}
	}
	return result
}

// Remove marks the given positions dead. Already dead tiles are left alone.
// No compaction happens until Cascade.
func (g *Grid) Remove(positions ...Position) error {
	for _, pos := range positions {
		if !g.InBounds(pos) {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
		}
	}
	changed := false
	for _, pos := range positions {
		tile := &g.columns[pos.Col][pos.Row]
		if tile.Alive {
			tile.Alive = false
			changed = true
		}
	}
	if changed {
		g.version++
	}
	return nil
}

// Cascade applies gravity to every column: alive tiles keep their relative
// order and drop to the bottom, dead slots collect at the top. Column
// lengths never change.
func (g *Grid) Cascade() {
	changed := false
	for c, col := range g.columns {
		next := 0
		for r, tile := range col {
			if !tile.Alive {
				continue
			}
			if r != next {
				changed = true
			}
			col[next] = tile
			next++
		}
		for r := next; r < len(col); r++ {
			col[r] = Tile{}
		}
		g.columns[c] = col
	}
	if changed {
		g.version++
	}
}

// Settled reports whether every column has its alive tiles contiguous from
// the bottom
func (g *Grid) Settled() bool {
	for _, col := range g.columns {
		seenDead := false
		for _, tile := range col {
			if !tile.Alive {
				seenDead = true
			} else if seenDead {
				return false
			}
		}
	}
	return true
}

// AliveCount returns the number of alive tiles, blockers included
func (g *Grid) AliveCount() int {
	count := 0
	for _, col := range g.columns {
		for _, tile := range col {
			if tile.Alive {
				count++
			}
		}
	}
	return count
}

// AlivePositions lists alive positions column-major, bottom-up
func (g *Grid) AlivePositions() []Position {
	var result []Position
	for c, col := range g.columns {
		for r, tile := range col {
			if tile.Alive {
				result = append(result, Position{Col: c, Row: r})
			}
		}
	}
	return result
}

// Clone returns a deep copy that shares nothing with g
func (g *Grid) Clone() *Grid {
	cols := make([][]Tile, len(g.columns))
	for c, col := range g.columns {
		cols[c] = make([]Tile, len(col))
		copy(cols[c], col)
	}
	return &Grid{columns: cols, version: g.version}
}

// Equal compares tile contents, ignoring version
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || len(g.columns) != len(other.columns) {
		return false
	}
	for c, col := range g.columns {
		if len(col) != len(other.columns[c]) {
			return false
		}
		for r, tile := range col {
			if tile != other.columns[c][r] {
				return false
			}
		}
	}
	return true
}

// Rows returns the tiles top row first, for renderers. Short columns are
// padded with dead tiles.
func (g *Grid) Rows() [][]Tile {
	height := g.Height()
	rows := make([][]Tile, height)
	for y := range rows {
		rows[y] = make([]Tile, len(g.columns))
		r := height - 1 - y
		for c, col := range g.columns {
			if r < len(col) {
				rows[y][c] = col[r]
			}
		}
	}
	return rows
}

// Notation returns the grid as notation rows, top row first
func (g *Grid) Notation() []string {
	rows := g.Rows()
	result := make([]string, len(rows))
	for y, row := range rows {
		var sb strings.Builder
		for _, tile := range row {
			sb.WriteByte(tile.notation())
		}
		result[y] = sb.String()
	}
	return result
}

func (g *Grid) String() string {
	return strings.Join(g.Notation(), "\n")
}

// Fingerprint is a stable content hash of the grid
func (g *Grid) Fingerprint() string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%d:%s", len(g.columns), g.String())))
	return hex.EncodeToString(sum[:16])
}
