package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type TileSuite struct {
	suite.Suite
}

func TestTileSuite(t *testing.T) {
	suite.Run(t, new(TileSuite))
}

func (s *TileSuite) TestParseTileKindAliases() {
	cases := map[string]TileKind{
		"":        TileNormal,
		"white":   TileNormal,
		"Bonus":   TileBonus,
		"blue":    TileBonus,
		"grey":    TileBlocker,
		"gray":    TileBlocker,
		"blocker": TileBlocker,
	}
	for input, want := range cases {
		got, err := ParseTileKind(input)
		s.Require().NoError(err, input)
		s.Equal(want, got, input)
	}

	_, err := ParseTileKind("purple")
	s.ErrorIs(err, ErrInvalidTile)
}

func (s *TileSuite) TestNewTile() {
	tile, err := NewTile(TileSpec{Letter: "e"})
	s.Require().NoError(err)
	s.Equal(Tile{Letter: 'E', Kind: TileNormal, Alive: true}, tile)

	tile, err = NewTile(TileSpec{Letter: "X", Kind: TileBlocker})
	s.Require().NoError(err)
	s.Equal(Tile{Kind: TileBlocker, Alive: true}, tile)

	tile, err = NewTile(TileSpec{})
	s.Require().NoError(err)
	s.False(tile.Alive)
}

func (s *TileSuite) TestNewTileRejectsKind() {
	_, err := NewTile(TileSpec{Letter: "A", Kind: TileKind(9)})
	s.ErrorIs(err, ErrInvalidTile)
}

func (s *TileSuite) TestTileSpecDecodesKindNames() {
	var fromJSON TileSpec
	s.Require().NoError(json.Unmarshal([]byte(`{"letter":"z","kind":"blue"}`), &fromJSON))
	s.Equal(TileSpec{Letter: "z", Kind: TileBonus}, fromJSON)

	var fromYAML TileSpec
	s.Require().NoError(yaml.Unmarshal([]byte("kind: grey\n"), &fromYAML))
	s.Equal(TileBlocker, fromYAML.Kind)

	encoded, err := json.Marshal(TileSpec{Letter: "A", Kind: TileBonus})
	s.Require().NoError(err)
	s.JSONEq(`{"letter":"A","kind":"bonus"}`, string(encoded))
}

func (s *TileSuite) TestNotationRoundTrip() {
	for _, c := range "Aq#." {
		tile, err := tileFromNotation(c)
		s.Require().NoError(err)
		s.Equal(byte(c), tile.notation())
	}
}
