package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-Collins/SpellTower-solver/internal/api"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/apierr"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/request"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/factory"
	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := newUnloadedTestServer(t)
	err := ts.app.DictionaryService.LoadFromFile(t.Context(), "../../data/words.txt")
	require.NoError(t, err)
	return ts
}

func newUnloadedTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Clock:             app.Clock,
		DictionaryService: app.DictionaryService,
		PuzzleService:     app.PuzzleService,
		SolverController:  app.SolverController,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		encoded, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, rr.Body.String())
	resp := decode[apierr.ErrorResponse](t, rr)
	assert.Equal(t, code, resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestDictionaryStatus(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/dictionary", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.Dictionary](t, rr)
	assert.True(t, resp.Loaded)
	assert.Equal(t, ts.app.DictionaryService.WordCount(), resp.WordCount)
	assert.Greater(t, resp.WordCount, 1000)
}

func TestSolveInlineRows(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/solve", request.PuzzleRequest{Rows: []string{"CAT"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[response.SolveResult](t, rr)
	assert.Equal(t, []string{"CAT"}, resp.Words)
	assert.Equal(t, 15, resp.TotalScore)
	assert.Equal(t, []string{"..."}, resp.FinalGrid)

	require.Len(t, resp.Rounds, 1)
	round := resp.Rounds[0]
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, "CAT", round.Candidate.Word)
	assert.Equal(t, []model.Position{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}, round.Candidate.Path)
	assert.Empty(t, round.Candidate.BonusTiles)
	assert.Equal(t, 3, round.CandidateCount)
	assert.Equal(t, []string{"..."}, round.Grid)
}

func TestSolveInlineTiles(t *testing.T) {
	ts := newTestServer(t)

	body := `{"tiles": [[{"letter": "c"}, {"letter": "a", "kind": "bonus"}, {"letter": "t"}]]}`
	rr := ts.request(http.MethodPost, "/api/v1/solve", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[response.SolveResult](t, rr)
	// The bonus A counts twice: (3+1+1+1) * 3
	assert.Equal(t, []string{"CAT"}, resp.Words)
	assert.Equal(t, 18, resp.TotalScore)
}

func TestSolveEmptyGrid(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/solve", request.PuzzleRequest{Rows: []string{"..", ".."}})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.SolveResult](t, rr)
	assert.Zero(t, resp.TotalScore)
	assert.Empty(t, resp.Words)
	assert.NotNil(t, resp.Words)
	assert.Empty(t, resp.Rounds)
}

func TestSolveInvalidTile(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/solve", request.PuzzleRequest{Rows: []string{"C4T"}})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidTile)
}

func TestSolveInvalidRequests(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/solve", "{not json")
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	rr = ts.request(http.MethodPost, "/api/v1/solve", map[string]any{})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidPuzzle)
}

func TestSolveWithoutDictionary(t *testing.T) {
	ts := newUnloadedTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/solve", request.PuzzleRequest{Rows: []string{"CAT"}})
	assertErrorCode(t, rr, http.StatusServiceUnavailable, apierr.CodeDictionaryUnavailable)

	rr = ts.request(http.MethodGet, "/api/v1/dictionary", nil)
	resp := decode[response.Dictionary](t, rr)
	assert.False(t, resp.Loaded)
}

func TestWordsInline(t *testing.T) {
	ts := newTestServer(t)

	body := request.WordsRequest{
		PuzzleRequest: request.PuzzleRequest{Rows: []string{"CAT"}},
		Limit:         2,
	}
	rr := ts.request(http.MethodPost, "/api/v1/words", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[response.Words](t, rr)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "CAT", resp.Candidates[0].Word)
	assert.Equal(t, 15, resp.Candidates[0].Score)
	assert.Equal(t, "AT", resp.Candidates[1].Word)
}

func TestWordsNegativeLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/words", `{"rows": ["CAT"], "limit": -1}`)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestPuzzleLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Create
	rr := ts.request(http.MethodPost, "/api/v1/puzzles", request.PuzzleRequest{Name: "cat", Rows: []string{"CAT"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[response.Puzzle](t, rr)
	assert.Equal(t, "/api/v1/puzzles/"+created.ID, rr.Header().Get("Location"))
	assert.Len(t, created.ID, 32)
	assert.Equal(t, "cat", created.Name)
	assert.Equal(t, []string{"CAT"}, created.Rows)

	// Get
	rr = ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decode[response.Puzzle](t, rr).ID)

	// List
	rr = ts.request(http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.PuzzleList](t, rr)
	require.Len(t, list.Puzzles, 1)
	assert.Equal(t, created.ID, list.Puzzles[0].ID)

	// Words
	rr = ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID+"/words?limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	words := decode[response.Words](t, rr)
	assert.Equal(t, 3, words.Total)
	require.Len(t, words.Candidates, 1)
	assert.Equal(t, "CAT", words.Candidates[0].Word)

	// Solve
	rr = ts.request(http.MethodPost, "/api/v1/puzzles/"+created.ID+"/solve", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 15, decode[response.SolveResult](t, rr).TotalScore)

	// Solving does not change the stored puzzle
	rr = ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID, nil)
	assert.Equal(t, []string{"CAT"}, decode[response.Puzzle](t, rr).Rows)

	// Delete
	rr = ts.request(http.MethodDelete, "/api/v1/puzzles/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID, nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

func TestCreatePuzzleIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	first := decode[response.Puzzle](t, ts.request(http.MethodPost, "/api/v1/puzzles", request.PuzzleRequest{Rows: []string{"AB", "CD"}}))
	second := decode[response.Puzzle](t, ts.request(http.MethodPost, "/api/v1/puzzles", request.PuzzleRequest{Rows: []string{"AB", "CD"}}))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID[:8], first.Name)
}

func TestPuzzleNotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/puzzles/missing"},
		{http.MethodDelete, "/api/v1/puzzles/missing"},
		{http.MethodPost, "/api/v1/puzzles/missing/solve"},
		{http.MethodGet, "/api/v1/puzzles/missing/words"},
		{http.MethodGet, "/api/v1/puzzles/missing/stream"},
	} {
		rr := ts.request(tc.method, tc.path, nil)
		assertErrorCode(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
	}
}

func TestPuzzleWordsInvalidLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/anything/words?limit=lots", nil)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestCreatePuzzleInvalidTile(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/puzzles", `{"tiles": [[{"letter": "?"}]]}`)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidTile)
}

type streamEvent struct {
	name string
	data string
}

func parseEvents(t *testing.T, body string) []streamEvent {
	t.Helper()
	var events []streamEvent
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		var ev streamEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data += strings.TrimPrefix(line, "data: ")
			}
		}
		require.NotEmpty(t, ev.name, block)
		events = append(events, ev)
	}
	return events
}

func TestPuzzleStream(t *testing.T) {
	ts := newTestServer(t)

	created := decode[response.Puzzle](t, ts.request(http.MethodPost, "/api/v1/puzzles", request.PuzzleRequest{Rows: []string{"CAT"}}))

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID+"/stream", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))

	events := parseEvents(t, rr.Body.String())
	require.Len(t, events, 2)

	assert.Equal(t, "round", events[0].name)
	var round response.Round
	require.NoError(t, json.Unmarshal([]byte(events[0].data), &round))
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, "CAT", round.Candidate.Word)
	assert.Equal(t, []string{"CAT"}, round.Board)
	assert.Equal(t, 15, round.TotalScore)

	assert.Equal(t, "done", events[1].name)
	var result response.SolveResult
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &result))
	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, []string{"CAT"}, result.Words)
}

func TestPuzzleStreamWithoutDictionary(t *testing.T) {
	ts := newUnloadedTestServer(t)

	created := decode[response.Puzzle](t, ts.request(http.MethodPost, "/api/v1/puzzles", request.PuzzleRequest{Rows: []string{"CAT"}}))

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/"+created.ID+"/stream", nil)
	assertErrorCode(t, rr, http.StatusServiceUnavailable, apierr.CodeDictionaryUnavailable)
}
