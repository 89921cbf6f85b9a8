package scoring

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// Table holds the tunable scoring parameters
type Table struct {
	// LetterValues maps A-Z to points; missing letters score 0
	LetterValues map[rune]int

	// LengthMultipliers maps word length to the factor applied to the
	// letter sum. Lengths past the largest key grow by one per letter.
	LengthMultipliers map[int]int

	// LongWordLength is the word length from which every adjacent alive tile
	// is cleared with the word. 0 disables the rule.
	LongWordLength int
}

// Default letter values, as on a Scrabble rack
var defaultLetterValues = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4, 'I': 1,
	'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3, 'Q': 10, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
}

const (
	defaultMaxTableLength = 15
	defaultLongWordLength = 5
	minMultiplierLength   = 1
	maxMultiplierLength   = 1024
)

// DefaultTable returns Scrabble letter values with the multiplier equal to
// the word length
func DefaultTable() Table {
	letters := make(map[rune]int, len(defaultLetterValues))
	for r, v := range defaultLetterValues {
		letters[r] = v
	}
	multipliers := make(map[int]int, defaultMaxTableLength)
	for n := 2; n <= defaultMaxTableLength; n++ {
		multipliers[n] = n
	}
	return Table{
		LetterValues:      letters,
		LengthMultipliers: multipliers,
		LongWordLength:    defaultLongWordLength,
	}
}

// LetterValue returns the points for a single letter
func (t Table) LetterValue(r rune) int {
	return t.LetterValues[r]
}

// Multiplier returns the factor for a word of length n. A length between
// configured keys uses the nearest smaller key plus the gap, capped at the
// next key's value; a length below every key uses the smallest key's value.
func (t Table) Multiplier(n int) int {
	keys := t.sortedLengths()
	if len(keys) == 0 {
		return n
	}
	if n < keys[0] {
		return t.LengthMultipliers[keys[0]]
	}
	i := sort.SearchInts(keys, n+1) - 1
	base := keys[i]
	m := t.LengthMultipliers[base] + (n - base)
	if i+1 < len(keys) {
		m = min(m, t.LengthMultipliers[keys[i+1]])
	}
	return m
}

func (t Table) sortedLengths() []int {
	keys := make([]int, 0, len(t.LengthMultipliers))
	for k := range t.LengthMultipliers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Validate checks the table is usable: multipliers positive and
// non-decreasing with length, letter values non-negative.
func (t Table) Validate() error {
	var errs []error
	for r, v := range t.LetterValues {
		if !model.IsLetter(r) {
			errs = append(errs, fmt.Errorf("letter %q is not A-Z", r))
		}
		if v < 0 {
			errs = append(errs, fmt.Errorf("letter %c has negative value %d", r, v))
		}
	}

	prev := 0
	keys := t.sortedLengths()
	for _, k := range keys {
		v := t.LengthMultipliers[k]
		if k < minMultiplierLength {
			errs = append(errs, fmt.Errorf("length %d is not positive", k))
		}
		if k > maxMultiplierLength {
			errs = append(errs, fmt.Errorf("length %d is above %d", k, maxMultiplierLength))
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("length %d has non-positive multiplier %d", k, v))
		}
		if v < prev {
			errs = append(errs, fmt.Errorf("length %d multiplier %d is below the previous %d", k, v, prev))
		}
		prev = v
	}

	// The curve must not fall anywhere between keys either
	if len(errs) == 0 && len(keys) > 0 {
		for n := minMultiplierLength; n <= keys[len(keys)-1]; n++ {
			if a, b := t.Multiplier(n), t.Multiplier(n+1); b < a {
				errs = append(errs, fmt.Errorf("multiplier falls from %d to %d at length %d", a, b, n+1))
				break
			}
		}
	}

	if t.LongWordLength < 0 {
		errs = append(errs, fmt.Errorf("long word length %d is negative", t.LongWordLength))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidScoringTable, errors.Join(errs...))
	}
	return nil
}

// tableFile is the YAML layout of a scoring table
type tableFile struct {
	LetterValues      map[string]int `yaml:"letter_values"`
	LengthMultipliers map[int]int    `yaml:"length_multipliers"`
	LongWordLength    *int           `yaml:"long_word_length"`
}

// LoadTable reads a YAML scoring table. Sections left out keep their
// default values.
func LoadTable(r io.Reader) (Table, error) {
	var file tableFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%w: %v", model.ErrInvalidScoringTable, err)
	}

	table := DefaultTable()
	if file.LetterValues != nil {
		table.LetterValues = make(map[rune]int, len(file.LetterValues))
		for key, v := range file.LetterValues {
			runes := []rune(strings.ToUpper(strings.TrimSpace(key)))
			if len(runes) != 1 {
				return Table{}, fmt.Errorf("%w: letter key %q", model.ErrInvalidScoringTable, key)
			}
			table.LetterValues[runes[0]] = v
		}
	}
	if file.LengthMultipliers != nil {
		table.LengthMultipliers = file.LengthMultipliers
	}
	if file.LongWordLength != nil {
		table.LongWordLength = *file.LongWordLength
	}

	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}

// MarshalYAML writes the table in the layout LoadTable reads
func (t Table) MarshalYAML() (interface{}, error) {
	letters := make(map[string]int, len(t.LetterValues))
	for r, v := range t.LetterValues {
		letters[string(r)] = v
	}
	long := t.LongWordLength
	return tableFile{
		LetterValues:      letters,
		LengthMultipliers: t.LengthMultipliers,
		LongWordLength:    &long,
	}, nil
}
