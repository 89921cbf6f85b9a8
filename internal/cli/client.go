package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/request"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func decodeError(status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
		errResp.Error.Status = status
		return &errResp.Error
	}
	return fmt.Errorf("HTTP %d: %s", status, string(body))
}

// Health checks the server
func (c *Client) Health(ctx context.Context) (response.Health, error) {
	var result response.Health
	err := c.Do(ctx, http.MethodGet, "/api/v1/health", nil, &result)
	return result, err
}

// Dictionary reports the server's word list
func (c *Client) Dictionary(ctx context.Context) (response.Dictionary, error) {
	var result response.Dictionary
	err := c.Do(ctx, http.MethodGet, "/api/v1/dictionary", nil, &result)
	return result, err
}

// Solve plays spec to completion on the server
func (c *Client) Solve(ctx context.Context, spec puzzle.Spec) (response.SolveResult, error) {
	var result response.SolveResult
	err := c.Do(ctx, http.MethodPost, "/api/v1/solve", request.FromSpec(spec), &result)
	return result, err
}

// Words ranks the candidates on spec's grid
func (c *Client) Words(ctx context.Context, spec puzzle.Spec, limit int) (response.Words, error) {
	var result response.Words
	body := request.WordsRequest{PuzzleRequest: request.FromSpec(spec), Limit: limit}
	err := c.Do(ctx, http.MethodPost, "/api/v1/words", body, &result)
	return result, err
}

// CreatePuzzle stores spec on the server
func (c *Client) CreatePuzzle(ctx context.Context, spec puzzle.Spec) (response.Puzzle, error) {
	var result response.Puzzle
	err := c.Do(ctx, http.MethodPost, "/api/v1/puzzles", request.FromSpec(spec), &result)
	return result, err
}

// ListPuzzles lists stored puzzles
func (c *Client) ListPuzzles(ctx context.Context) (response.PuzzleList, error) {
	var result response.PuzzleList
	err := c.Do(ctx, http.MethodGet, "/api/v1/puzzles", nil, &result)
	return result, err
}

// GetPuzzle fetches a stored puzzle
func (c *Client) GetPuzzle(ctx context.Context, id string) (response.Puzzle, error) {
	var result response.Puzzle
	err := c.Do(ctx, http.MethodGet, "/api/v1/puzzles/"+url.PathEscape(id), nil, &result)
	return result, err
}

// DeletePuzzle removes a stored puzzle
func (c *Client) DeletePuzzle(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/api/v1/puzzles/"+url.PathEscape(id), nil, nil)
}

// SolvePuzzle solves a stored puzzle
func (c *Client) SolvePuzzle(ctx context.Context, id string) (response.SolveResult, error) {
	var result response.SolveResult
	err := c.Do(ctx, http.MethodPost, "/api/v1/puzzles/"+url.PathEscape(id)+"/solve", nil, &result)
	return result, err
}

// maxEventBytes bounds a single event line; a done event carries every round
const maxEventBytes = 4 << 20

// WatchPuzzle solves a stored puzzle over the event stream, calling onRound
// as each round arrives
func (c *Client) WatchPuzzle(ctx context.Context, id string, onRound func(response.Round)) (response.SolveResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/puzzles/"+url.PathEscape(id)+"/stream", nil)
	if err != nil {
		return response.SolveResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response.SolveResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return response.SolveResult{}, decodeError(resp.StatusCode, body)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventBytes)

	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data += strings.TrimPrefix(line, "data: ")
		case line == "":
			result, done, err := handleEvent(event, data, onRound)
			if err != nil || done {
				return result, err
			}
			event, data = "", ""
		}
	}
	if err := scanner.Err(); err != nil {
		return response.SolveResult{}, fmt.Errorf("failed to read stream: %w", err)
	}
	return response.SolveResult{}, errors.New("stream ended before the solve finished")
}

func handleEvent(event, data string, onRound func(response.Round)) (response.SolveResult, bool, error) {
	var result response.SolveResult
	switch event {
	case "round":
		var round response.Round
		if err := json.Unmarshal([]byte(data), &round); err != nil {
			return result, false, fmt.Errorf("failed to parse round: %w", err)
		}
		if onRound != nil {
			onRound(round)
		}
	case "done":
		if err := json.Unmarshal([]byte(data), &result); err != nil {
			return result, false, fmt.Errorf("failed to parse result: %w", err)
		}
		return result, true, nil
	case "error":
		var apiErr APIError
		if err := json.Unmarshal([]byte(data), &apiErr); err != nil {
			return result, false, fmt.Errorf("failed to parse error: %w", err)
		}
		return result, false, &apiErr
	}
	return result, false, nil
}
