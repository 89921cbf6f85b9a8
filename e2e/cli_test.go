package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-Collins/SpellTower-solver/internal/api"
	"github.com/Alan-Collins/SpellTower-solver/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath  string
	projectRoot string
	serverURL   string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "spelltower-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/spelltower")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:  binaryPath,
		projectRoot: projectRoot,
		serverURL:   serverURL,
	}
}

// run executes the CLI with JSON output and returns stdout and stderr
func (r *cliRunner) run(args ...string) (string, string, error) {
	fullArgs := []string{"--output", "json"}
	if r.serverURL != "" {
		fullArgs = append(fullArgs, "--server", r.serverURL)
	} else {
		fullArgs = append(fullArgs, "--dictionary", filepath.Join(r.projectRoot, "data/words.txt"))
	}
	fullArgs = append(fullArgs, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Dir = r.projectRoot
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application
	projectRoot := findProjectRoot(t)
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	// Load dictionary
	err = app.LoadDictionary(context.Background(), filepath.Join(projectRoot, "data/words.txt"))
	require.NoError(t, err)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Clock:             app.Clock,
		DictionaryService: app.DictionaryService,
		PuzzleService:     app.PuzzleService,
		SolverController:  app.SolverController,
		SolveTimeout:      10 * time.Second,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type candidateResponse struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Path  []struct {
		Col int `json:"col"`
		Row int `json:"row"`
	} `json:"path"`
}

type roundResponse struct {
	Number     int               `json:"number"`
	Candidate  candidateResponse `json:"candidate"`
	TotalScore int               `json:"total_score"`
	Grid       []string          `json:"grid"`
}

type solveResponse struct {
	TotalScore int             `json:"total_score"`
	Words      []string        `json:"words"`
	Rounds     []roundResponse `json:"rounds"`
	FinalGrid  []string        `json:"final_grid"`
}

type wordsResponse struct {
	Total      int                 `json:"total"`
	Candidates []candidateResponse `json:"candidates"`
}

type puzzleResponse struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Rows []string `json:"rows"`
}

type puzzleListResponse struct {
	Puzzles []puzzleResponse `json:"puzzles"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Dictionary struct {
		Loaded    bool `json:"loaded"`
		WordCount int  `json:"word_count"`
	} `json:"dictionary"`
}

func assertSolveConsistent(t *testing.T, resp solveResponse) {
	t.Helper()

	total := 0
	for i, round := range resp.Rounds {
		assert.Equal(t, i+1, round.Number)
		assert.Equal(t, resp.Words[i], round.Candidate.Word)
		assert.Len(t, round.Candidate.Path, len(round.Candidate.Word))
		total += round.Candidate.Score
		assert.Equal(t, total, round.TotalScore)
	}
	assert.Equal(t, total, resp.TotalScore)
}

// Tests

func TestCLI_LocalSolve(t *testing.T) {
	cli := newCLIRunner(t, "")

	stdout, stderr, err := cli.run("solve", "data/puzzles/sample.yaml")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp solveResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotEmpty(t, resp.Words)
	assert.Positive(t, resp.TotalScore)
	assert.Len(t, resp.FinalGrid, 5)
	assertSolveConsistent(t, resp)

	// Same input, same game
	again, stderr, err := cli.run("solve", "data/puzzles/sample.yaml")
	require.NoError(t, err, "stderr: %s", stderr)
	var second solveResponse
	require.NoError(t, json.Unmarshal([]byte(again), &second))
	assert.Equal(t, resp.Words, second.Words)
	assert.Equal(t, resp.TotalScore, second.TotalScore)
}

func TestCLI_LocalWords(t *testing.T) {
	cli := newCLIRunner(t, "")

	stdout, stderr, err := cli.run("words", "--limit", "5", "data/puzzles/tiles.json")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp wordsResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotEmpty(t, resp.Candidates)
	assert.LessOrEqual(t, len(resp.Candidates), 5)
	assert.GreaterOrEqual(t, resp.Total, len(resp.Candidates))
	for i := 1; i < len(resp.Candidates); i++ {
		assert.GreaterOrEqual(t, resp.Candidates[i-1].Score, resp.Candidates[i].Score)
	}
}

func TestCLI_GenerateThenSolve(t *testing.T) {
	cli := newCLIRunner(t, "")

	stdout, stderr, err := cli.run("generate", "--seed", "7", "--width", "6", "--height", "8", "--name", "seven")
	require.NoError(t, err, "stderr: %s", stderr)

	var generated puzzleResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &generated))
	assert.Equal(t, "seven", generated.Name)
	require.Len(t, generated.Rows, 8)

	path := filepath.Join(t.TempDir(), "seven.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(generated.Rows, "\n")), 0o644))

	stdout, stderr, err = cli.run("solve", path)
	require.NoError(t, err, "stderr: %s", stderr)

	var resp solveResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assertSolveConsistent(t, resp)
}

func TestCLI_RemoteFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	stdout, stderr, err := cli.run("health")
	require.NoError(t, err, "stderr: %s", stderr)
	var health healthResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.Dictionary.Loaded)
	assert.Positive(t, health.Dictionary.WordCount)

	// Save a puzzle
	stdout, stderr, err = cli.run("puzzle", "save", "data/puzzles/sample.yaml")
	require.NoError(t, err, "stderr: %s", stderr)
	var saved puzzleResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &saved))
	require.NotEmpty(t, saved.ID)

	// List puzzles
	stdout, stderr, err = cli.run("puzzle", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	var list puzzleListResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	require.Len(t, list.Puzzles, 1)
	assert.Equal(t, saved.ID, list.Puzzles[0].ID)

	// Solving by ID matches solving the file on the server
	stdout, stderr, err = cli.run("puzzle", "solve", saved.ID)
	require.NoError(t, err, "stderr: %s", stderr)
	var byID solveResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &byID))

	stdout, stderr, err = cli.run("solve", "data/puzzles/sample.yaml")
	require.NoError(t, err, "stderr: %s", stderr)
	var byFile solveResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &byFile))

	assert.Equal(t, byFile.Words, byID.Words)
	assert.Equal(t, byFile.TotalScore, byID.TotalScore)

	// Delete
	_, stderr, err = cli.run("puzzle", "delete", saved.ID)
	require.NoError(t, err, "stderr: %s", stderr)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	remote := newCLIRunner(t, ts.addr)

	// Unknown puzzle
	_, stderr, err := remote.run("puzzle", "show", "missing")
	assert.Error(t, err)
	assert.Contains(t, stderr, `"error"`)
	assert.Contains(t, strings.ToLower(stderr), "not found")

	// Invalid tile
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("C4T\n"), 0o644))
	_, stderr, err = remote.run("solve", path)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(stderr), "invalid tile")

	// Server-only commands need --server
	local := newCLIRunner(t, "")
	_, stderr, err = local.run("puzzle", "list")
	assert.Error(t, err)
	assert.Contains(t, stderr, "--server")
}
