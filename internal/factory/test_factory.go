package factory

import (
	"time"

	"github.com/Alan-Collins/SpellTower-solver/internal/dependencies/mocks"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/scoring"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/search"
	"github.com/Alan-Collins/SpellTower-solver/internal/storage/memory"
	"github.com/Alan-Collins/SpellTower-solver/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, scoring.DefaultTable(), search.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 2-letter words
		"ab", "ad", "ae", "ah", "ai", "am", "an", "ar", "as", "at",
		"be", "by", "do", "em", "en", "er", "es", "go", "he", "hi",
		"in", "is", "it", "me", "my", "no", "of", "oh", "on", "or",
		"re", "so", "ta", "ti", "to", "up", "us", "we", "ye",
		// 3-letter words
		"ace", "act", "aid", "ant", "ape", "arc", "are", "art", "ate", "bat",
		"cab", "can", "car", "cat", "den", "dot", "ear", "eat", "eon", "era",
		"ion", "its", "net", "nit", "not", "oar", "one", "ore", "rat", "ret",
		"rot", "sat", "sea", "set", "sit", "tan", "tar", "tea", "ten", "tie",
		"tin", "toe", "ton", "tor",
		// 4-letter words
		"cart", "care", "cars", "cast", "cats", "coat", "dote", "east", "eats", "into",
		"iron", "near", "neat", "nest", "note", "oats", "rate", "rats", "rest", "rise",
		"rite", "sane", "sate", "seat", "sent", "site", "star", "stir", "tear", "tern",
		"tier", "tire", "toes", "tone", "tons", "torn", "tote", "tsar",
		// 5-letter words
		"aster", "crate", "earns", "irate", "notes", "onset", "rates", "react", "snore", "stare",
		"steno", "stone", "store", "tears", "tenor", "toner", "trace", "train",
		// Long words
		"cartons", "nitrate", "notaries", "senator", "treason",
	}
	return t.DictionaryService.LoadWords(words)
}
