package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

// Output handles formatting output based on the configured format
type Output struct {
	format  string
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewOutput creates a new Output formatter writing to stdout and stderr
func NewOutput(format string) *Output {
	return &Output{format: format, out: os.Stdout, errOut: os.Stderr}
}

// newCmdOutput creates an Output bound to the command's writers
func newCmdOutput(cmd *cobra.Command) *Output {
	return &Output{
		format:  cfg.Output,
		verbose: cfg.Verbose,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.SolveResult:
		o.printSolveResult(v)
	case response.Words:
		o.printWords(v)
	case response.Puzzle:
		o.printPuzzle(v)
	case response.PuzzleList:
		o.printPuzzleList(v)
	case puzzle.Spec:
		o.printSpec(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func formatPath(path []model.Position) string {
	return strings.Join(lo.Map(path, func(p model.Position, _ int) string { return p.String() }), " ")
}

func (o *Output) printGrid(rows []string, indent string) {
	for _, row := range rows {
		fmt.Fprintf(o.out, "%s|%s|\n", indent, row)
	}
}

func (o *Output) printSolveResult(r response.SolveResult) {
	if len(r.Rounds) == 0 {
		fmt.Fprintln(o.out, "No words found")
	}
	for _, round := range r.Rounds {
		o.printRound(round)
	}
	o.printSolveSummary(r)
}

// PrintRound outputs a single round as it is played. JSON output skips
// rounds; the final result carries them.
func (o *Output) PrintRound(round response.Round) {
	if o.format != "json" {
		o.printRound(round)
	}
}

// PrintSolveSummary outputs the totals of a result whose rounds were
// already printed
func (o *Output) PrintSolveSummary(r response.SolveResult) {
	if o.format == "json" {
		o.printJSON(r)
		return
	}
	if len(r.Rounds) == 0 {
		fmt.Fprintln(o.out, "No words found")
	}
	o.printSolveSummary(r)
}

func (o *Output) printRound(round response.Round) {
	c := round.Candidate
	fmt.Fprintf(o.out, "Round %d: %s +%d (total %d)\n", round.Number, c.Word, c.Score, round.TotalScore)
	fmt.Fprintf(o.out, "  Path: %s\n", formatPath(c.Path))
	if len(c.BonusTiles) > 0 {
		fmt.Fprintf(o.out, "  Bonus tiles: %s\n", formatPath(c.BonusTiles))
	}
	o.printBoard(round.Board, c)
	if o.verbose {
		fmt.Fprintf(o.out, "  Candidates: %d\n", round.CandidateCount)
		o.printGrid(round.Grid, "  ")
	}
}

// pathMarks labels path steps in order; longer paths fall back to '*'
const pathMarks = "123456789abcdefghijklmnopqrstuvwxyz"

// boardMarks returns one marker row per board row: the step number of each
// path tile, '+' for the extra tiles cleared with the word
func boardMarks(board []string, c response.Candidate) []string {
	marks := make([][]rune, len(board))
	for i, row := range board {
		marks[i] = []rune(strings.Repeat(" ", len([]rune(row))))
	}
	set := func(p model.Position, mark rune) {
		y := len(board) - 1 - p.Row
		if y >= 0 && y < len(marks) && p.Col >= 0 && p.Col < len(marks[y]) {
			marks[y][p.Col] = mark
		}
	}
	for i, p := range c.Path {
		mark := '*'
		if i < len(pathMarks) {
			mark = rune(pathMarks[i])
		}
		set(p, mark)
	}
	for _, p := range c.BonusTiles {
		set(p, '+')
	}
	return lo.Map(marks, func(m []rune, _ int) string { return string(m) })
}

// printBoard prints the grid a word was played on beside its path
func (o *Output) printBoard(board []string, c response.Candidate) {
	for i, mark := range boardMarks(board, c) {
		fmt.Fprintf(o.out, "  |%s|  |%s|\n", board[i], mark)
	}
}

func (o *Output) printSolveSummary(r response.SolveResult) {
	fmt.Fprintln(o.out)
	fmt.Fprintf(o.out, "Total score: %d\n", r.TotalScore)
	fmt.Fprintf(o.out, "Words (%d): %s\n", len(r.Words), strings.Join(r.Words, ", "))
	fmt.Fprintln(o.out, "Final grid:")
	o.printGrid(r.FinalGrid, "  ")
}

func (o *Output) printWords(w response.Words) {
	if len(w.Candidates) == 0 {
		fmt.Fprintln(o.out, "No words found")
		return
	}

	width := lo.Max(lo.Map(w.Candidates, func(c response.Candidate, _ int) int { return len(c.Word) }))
	for i, c := range w.Candidates {
		fmt.Fprintf(o.out, "%3d. %-*s %5d  %s\n", i+1, width, c.Word, c.Score, formatPath(c.Path))
	}
	if w.Total > len(w.Candidates) {
		fmt.Fprintf(o.out, "Showing %d of %d words\n", len(w.Candidates), w.Total)
	}
}

func (o *Output) printPuzzle(p response.Puzzle) {
	fmt.Fprintf(o.out, "Puzzle: %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(o.out, "Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	o.printGrid(p.Rows, "  ")
}

func (o *Output) printPuzzleList(l response.PuzzleList) {
	if len(l.Puzzles) == 0 {
		fmt.Fprintln(o.out, "No puzzles stored")
		return
	}
	for _, p := range l.Puzzles {
		fmt.Fprintf(o.out, "%s  %-20s %s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printSpec(spec puzzle.Spec) {
	if err := puzzle.Encode(o.out, spec); err != nil {
		o.PrintError(err)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.out, "Status: %s\n", h.Status)
	if h.Dictionary.Loaded {
		fmt.Fprintf(o.out, "Dictionary: %d words\n", h.Dictionary.WordCount)
	} else {
		fmt.Fprintln(o.out, "Dictionary: not loaded")
	}
}
