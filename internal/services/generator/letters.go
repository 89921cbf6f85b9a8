package generator

import "github.com/Alan-Collins/SpellTower-solver/internal/dependencies/random"

// LetterBag draws letters with fixed relative frequencies
type LetterBag struct {
	letters []rune
	weights []int
	total   int
}

// English tile counts from a standard 100-tile word game set, blanks excluded
var englishCounts = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2, 'I': 9,
	'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2, 'Q': 1, 'R': 6,
	'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
}

// EnglishBag returns a LetterBag weighted like English word game tiles
func EnglishBag() *LetterBag {
	return NewLetterBag(englishCounts)
}

// NewLetterBag builds a bag from letter counts; non-positive counts are
// dropped. Letters are kept in alphabetical order so draws are reproducible.
func NewLetterBag(counts map[rune]int) *LetterBag {
	bag := &LetterBag{}
	for r := 'A'; r <= 'Z'; r++ {
		n := counts[r]
		if n <= 0 {
			continue
		}
		bag.letters = append(bag.letters, r)
		bag.weights = append(bag.weights, n)
		bag.total += n
	}
	return bag
}

// Len returns the total weight of the bag
func (b *LetterBag) Len() int {
	return b.total
}

// Draw picks a letter; the bag is not depleted
func (b *LetterBag) Draw(rnd random.Random) rune {
	if b.total == 0 {
		return 'E'
	}
	n := rnd.Intn(b.total)
	for i, w := range b.weights {
		if n < w {
			return b.letters[i]
		}
		n -= w
	}
	return b.letters[len(b.letters)-1]
}
