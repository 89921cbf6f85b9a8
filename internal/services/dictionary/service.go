package dictionary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/storage"
)

// Service owns the loaded word list and hands out its Index
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.RWMutex
	index *Index
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "dictionary")),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	idx, err := fromWords(words)
	if err != nil {
		return err
	}
	s.setIndex(idx, "storage")
	return nil
}

// LoadFromFile loads a word list from disk: a JSON array when the file ends
// in .json, otherwise one word per line. The normalized words are saved to
// storage so later runs can use LoadFromStorage.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDictionary, err)
	}
	defer file.Close()

	idx, err := s.decode(path, file)
	if err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, idx.Words()); err != nil {
		return err
	}

	s.setIndex(idx, path)
	return nil
}

func (s *Service) decode(path string, r io.Reader) (*Index, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(r)
	}
	return Load(r)
}

// LoadWords directly loads a slice of words. An empty list is accepted and
// yields an Index with no entries.
func (s *Service) LoadWords(words []string) error {
	s.setIndex(NewIndex(words), "inline")
	return nil
}

func (s *Service) setIndex(idx *Index, source string) {
	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	s.logger.Info("dictionary loaded",
		slog.String("source", source),
		slog.Int("word_count", idx.Len()),
	)
}

// Index returns the loaded Index
func (s *Service) Index() (*Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	return s.index, nil
}

// IsValidWord checks if a word exists in the dictionary
func (s *Service) IsValidWord(word string) bool {
	idx, err := s.Index()
	if err != nil {
		return false
	}
	return idx.IsWord(strings.TrimSpace(word))
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index != nil
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

// Interface check
type ServiceInterface interface {
	Index() (*Index, error)
	IsValidWord(word string) bool
	IsLoaded() bool
	WordCount() int
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)
