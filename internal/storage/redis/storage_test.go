package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PuzzleTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newPuzzle(id model.PuzzleID, createdAt time.Time) *model.Puzzle {
	return &model.Puzzle{
		ID:        id,
		Name:      "puzzle " + string(id),
		Rows:      []string{"AB", "c#"},
		CreatedAt: createdAt,
	}
}

// Puzzle tests

func (s *StorageSuite) TestSaveAndGetPuzzle() {
	puzzle := newPuzzle("p1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	err := s.storage.SavePuzzle(s.ctx, puzzle)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPuzzle(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(puzzle.Name, retrieved.Name)
	s.Equal(puzzle.Rows, retrieved.Rows)
	s.True(puzzle.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestSavePuzzleSetsTTL() {
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("p1", time.Now()))

	s.Equal(time.Hour, s.mini.TTL(puzzleKey("p1")))
}

func (s *StorageSuite) TestGetPuzzleNotFound() {
	_, err := s.storage.GetPuzzle(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPuzzleNotFound)
}

func (s *StorageSuite) TestDeletePuzzle() {
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("p1", time.Now()))

	err := s.storage.DeletePuzzle(s.ctx, "p1")
	s.Require().NoError(err)

	_, err = s.storage.GetPuzzle(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPuzzleNotFound)

	members, err := s.mini.Members(puzzleIndexKey())
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *StorageSuite) TestListPuzzles() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("second", base.Add(time.Minute)))
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("first", base))

	puzzles, err := s.storage.ListPuzzles(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(puzzles, 2)
	s.Equal(model.PuzzleID("first"), puzzles[0].ID)
	s.Equal(model.PuzzleID("second"), puzzles[1].ID)
}

func (s *StorageSuite) TestListPuzzlesEmpty() {
	puzzles, err := s.storage.ListPuzzles(s.ctx)
	s.Require().NoError(err)
	s.Empty(puzzles)
}

func (s *StorageSuite) TestListPuzzlesSkipsExpired() {
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("p1", time.Now()))
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("p2", time.Now()))

	s.mini.FastForward(2 * time.Hour)
	_ = s.storage.SavePuzzle(s.ctx, newPuzzle("p3", time.Now()))

	puzzles, err := s.storage.ListPuzzles(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(puzzles, 1)
	s.Equal(model.PuzzleID("p3"), puzzles[0].ID)

	members, err := s.mini.Members(puzzleIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{puzzleKey("p3")}, members)
}

// Dictionary tests

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	err := s.storage.SaveDictionaryWords(s.ctx, []string{"DOG", "CAT", "ABC"})
	s.Require().NoError(err)

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"ABC", "CAT", "DOG"}, words)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplaces() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"OLD"})
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"NEW"})

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"NEW"}, words)
}
