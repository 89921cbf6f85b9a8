package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/solver"
)

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// Dictionary reports the word list state
type Dictionary struct {
	Loaded    bool `json:"loaded"`
	WordCount int  `json:"word_count"`
}

// Candidate represents a playable word
type Candidate struct {
	Word       string           `json:"word"`
	Score      int              `json:"score"`
	Path       []model.Position `json:"path"`
	BonusTiles []model.Position `json:"bonus_tiles"`
}

// CandidateFromModel converts model.Candidate
func CandidateFromModel(c model.Candidate) Candidate {
	bonus := c.BonusTiles
	if bonus == nil {
		bonus = []model.Position{}
	}
	return Candidate{
		Word:       c.Word,
		Score:      c.Score,
		Path:       c.Path,
		BonusTiles: bonus,
	}
}

// Round represents one played word, the grid it was played on and the
// grid it left
type Round struct {
	Number         int       `json:"number"`
	Candidate      Candidate `json:"candidate"`
	TotalScore     int       `json:"total_score"`
	CandidateCount int       `json:"candidate_count"`
	Board          []string  `json:"board,omitempty"`
	Grid           []string  `json:"grid"`
}

// RoundFromModel converts solver.Round
func RoundFromModel(r solver.Round) Round {
	round := Round{
		Number:         r.Number,
		Candidate:      CandidateFromModel(r.Candidate),
		TotalScore:     r.TotalScore,
		CandidateCount: r.CandidateCount,
		Grid:           r.Grid.Notation(),
	}
	if r.Board != nil {
		round.Board = r.Board.Notation()
	}
	return round
}

// SolveResult is the response for a full solve
type SolveResult struct {
	TotalScore int      `json:"total_score"`
	Words      []string `json:"words"`
	Rounds     []Round  `json:"rounds"`
	FinalGrid  []string `json:"final_grid"`
	ElapsedMS  int64    `json:"elapsed_ms"`
}

// SolveResultFromModel converts solver.Result
func SolveResultFromModel(r *solver.Result) SolveResult {
	words := r.Words()
	if words == nil {
		words = []string{}
	}
	return SolveResult{
		TotalScore: r.TotalScore,
		Words:      words,
		Rounds:     lo.Map(r.Rounds, func(round solver.Round, _ int) Round { return RoundFromModel(round) }),
		FinalGrid:  r.FinalGrid.Notation(),
		ElapsedMS:  r.Elapsed.Milliseconds(),
	}
}

// Words is the response for ranked candidates
type Words struct {
	Total      int         `json:"total"`
	Candidates []Candidate `json:"candidates"`
}

// WordsFromModel converts ranked candidates
func WordsFromModel(ranked []model.Candidate, total int) Words {
	return Words{
		Total:      total,
		Candidates: lo.Map(ranked, func(c model.Candidate, _ int) Candidate { return CandidateFromModel(c) }),
	}
}

// Puzzle represents a stored puzzle
type Puzzle struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      []string  `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// PuzzleFromModel converts model.Puzzle
func PuzzleFromModel(p *model.Puzzle) Puzzle {
	return Puzzle{
		ID:        string(p.ID),
		Name:      p.Name,
		Rows:      p.Rows,
		CreatedAt: p.CreatedAt,
	}
}

// PuzzleList is the response for listing puzzles
type PuzzleList struct {
	Puzzles []Puzzle `json:"puzzles"`
}

// PuzzleListFromModel converts a slice of puzzles
func PuzzleListFromModel(puzzles []*model.Puzzle) PuzzleList {
	return PuzzleList{
		Puzzles: lo.Map(puzzles, func(p *model.Puzzle, _ int) Puzzle { return PuzzleFromModel(p) }),
	}
}
