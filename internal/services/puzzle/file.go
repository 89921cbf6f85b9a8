package puzzle

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// Spec is a puzzle as supplied by a user. Exactly one of Rows (grid
// notation, top row first) or Tiles (top row first) is set.
type Spec struct {
	Name  string             `json:"name,omitempty" yaml:"name,omitempty"`
	Rows  []string           `json:"rows,omitempty" yaml:"rows,omitempty"`
	Tiles [][]model.TileSpec `json:"tiles,omitempty" yaml:"tiles,omitempty"`
}

// Grid validates the spec and builds its grid
func (sp Spec) Grid() (*model.Grid, error) {
	switch {
	case len(sp.Rows) > 0 && len(sp.Tiles) > 0:
		return nil, fmt.Errorf("%w: give rows or tiles, not both", model.ErrInvalidPuzzle)
	case len(sp.Rows) > 0:
		return model.ParseRows(sp.Rows)
	case len(sp.Tiles) > 0:
		return model.GridFromRows(sp.Tiles)
	default:
		return nil, fmt.Errorf("%w: no rows or tiles", model.ErrInvalidPuzzle)
	}
}

// Decode reads a puzzle file. A YAML (or JSON) mapping is decoded as a
// Spec; anything else is read as plain grid notation, one row per line.
func Decode(r io.Reader) (Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Spec{}, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err == nil && isMapping(&doc) {
		var spec Spec
		if err := doc.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("%w: %v", model.ErrInvalidPuzzle, err)
		}
		return spec, nil
	}

	return Spec{Rows: notationLines(data)}, nil
}

func isMapping(doc *yaml.Node) bool {
	return doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode
}

func notationLines(data []byte) []string {
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// Encode writes spec as YAML
func Encode(w io.Writer, spec Spec) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
