package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

type TableSuite struct {
	suite.Suite
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableSuite))
}

func (s *TableSuite) TestDefaultTable() {
	table := DefaultTable()

	s.Require().NoError(table.Validate())
	s.Equal(1, table.LetterValue('E'))
	s.Equal(10, table.LetterValue('Q'))
	s.Equal(0, table.LetterValue('?'))
	s.Equal(3, table.Multiplier(3))
	s.Equal(5, table.LongWordLength)
}

func (s *TableSuite) TestMultiplierExtrapolates() {
	table := DefaultTable()
	s.Equal(20, table.Multiplier(20))

	custom := Table{LengthMultipliers: map[int]int{2: 1, 4: 3}}
	s.Equal(1, custom.Multiplier(1))
	s.Equal(1, custom.Multiplier(2))
	s.Equal(2, custom.Multiplier(3))
	s.Equal(3, custom.Multiplier(4))
	s.Equal(5, custom.Multiplier(6))
}

func (s *TableSuite) TestMultiplierIsMonotonic() {
	table := DefaultTable()
	for n := 2; n < 30; n++ {
		s.LessOrEqual(table.Multiplier(n), table.Multiplier(n+1))
	}
}

func (s *TableSuite) TestSparseTableHoldsBetweenKeys() {
	table, err := LoadTable(strings.NewReader("length_multipliers:\n  3: 3\n  6: 3\n"))
	s.Require().NoError(err)

	got := make([]int, 0, 5)
	for n := 3; n <= 7; n++ {
		got = append(got, table.Multiplier(n))
	}
	s.Equal([]int{3, 3, 3, 3, 4}, got)

	for n := 1; n < 30; n++ {
		s.LessOrEqual(table.Multiplier(n), table.Multiplier(n+1), "length %d", n)
	}
}

func (s *TableSuite) TestGapFillCappedAtNextKey() {
	table := Table{LengthMultipliers: map[int]int{2: 2, 4: 3, 8: 20}}
	s.Require().NoError(table.Validate())

	s.Equal(3, table.Multiplier(3))
	s.Equal(3, table.Multiplier(4))
	s.Equal(6, table.Multiplier(7))
	s.Equal(20, table.Multiplier(8))
	s.Equal(21, table.Multiplier(9))
}

func (s *TableSuite) TestValidateRejectsHugeLength() {
	table := Table{LengthMultipliers: map[int]int{2: 2, 5000: 10000}}
	s.ErrorIs(table.Validate(), model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestValidateRejectsDecreasing() {
	table := DefaultTable()
	table.LengthMultipliers[6] = 2

	s.ErrorIs(table.Validate(), model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestValidateRejectsNonPositive() {
	table := DefaultTable()
	table.LengthMultipliers = map[int]int{2: 0}

	s.ErrorIs(table.Validate(), model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestValidateRejectsNegativeLetter() {
	table := DefaultTable()
	table.LetterValues['A'] = -1

	s.ErrorIs(table.Validate(), model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestLoadTablePartial() {
	table, err := LoadTable(strings.NewReader(`
length_multipliers:
  2: 1
  3: 2
  5: 6
`))
	s.Require().NoError(err)

	s.Equal(2, table.Multiplier(3))
	s.Equal(7, table.Multiplier(6))
	// Letters and long word length keep defaults
	s.Equal(10, table.LetterValue('Z'))
	s.Equal(5, table.LongWordLength)
}

func (s *TableSuite) TestLoadTableLetters() {
	table, err := LoadTable(strings.NewReader(`
letter_values:
  a: 2
  Q: 7
long_word_length: 0
`))
	s.Require().NoError(err)

	s.Equal(2, table.LetterValue('A'))
	s.Equal(7, table.LetterValue('Q'))
	s.Equal(0, table.LetterValue('B'))
	s.Equal(0, table.LongWordLength)
}

func (s *TableSuite) TestLoadTableEmpty() {
	table, err := LoadTable(strings.NewReader(""))
	s.Require().NoError(err)
	s.Equal(DefaultTable(), table)
}

func (s *TableSuite) TestLoadTableRejectsBadKey() {
	_, err := LoadTable(strings.NewReader("letter_values:\n  AB: 1\n"))
	s.ErrorIs(err, model.ErrInvalidScoringTable)

	_, err = LoadTable(strings.NewReader("letter_values:\n  '1': 1\n"))
	s.ErrorIs(err, model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestLoadTableRejectsMalformed() {
	_, err := LoadTable(strings.NewReader("length_multipliers: [1, 2"))
	s.ErrorIs(err, model.ErrInvalidScoringTable)
}

func (s *TableSuite) TestYAMLRoundTrip() {
	data, err := yaml.Marshal(DefaultTable())
	s.Require().NoError(err)

	table, err := LoadTable(strings.NewReader(string(data)))
	s.Require().NoError(err)
	s.Equal(DefaultTable(), table)
}
