package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidTile           = "INVALID_TILE"
	CodeInvalidPuzzle         = "INVALID_PUZZLE"
	CodeOutOfBounds           = "OUT_OF_BOUNDS"
	CodePuzzleNotFound        = "PUZZLE_NOT_FOUND"
	CodeDictionaryUnavailable = "DICTIONARY_UNAVAILABLE"
	CodeTimeout               = "TIMEOUT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// FromError returns the API error body err maps to
func FromError(err error) APIError {
	return toHTTPError(err).apiError
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Input errors carry the offending tile or position, so pass the message on
	switch {
	case errors.Is(err, model.ErrInvalidTile):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTile, err.Error()}}
	case errors.Is(err, model.ErrInvalidPuzzle):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPuzzle, err.Error()}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, err.Error()}}
	case errors.Is(err, model.ErrPuzzleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePuzzleNotFound, "Puzzle not found"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded), errors.Is(err, model.ErrDictionary):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryUnavailable, "Dictionary is not loaded"}}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{http.StatusGatewayTimeout, APIError{CodeTimeout, "Search timed out"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
