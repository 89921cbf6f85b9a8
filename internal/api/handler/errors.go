package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest        = apierr.CodeInvalidRequest
	CodeInvalidTile           = apierr.CodeInvalidTile
	CodeInvalidPuzzle         = apierr.CodeInvalidPuzzle
	CodeOutOfBounds           = apierr.CodeOutOfBounds
	CodePuzzleNotFound        = apierr.CodePuzzleNotFound
	CodeDictionaryUnavailable = apierr.CodeDictionaryUnavailable
	CodeTimeout               = apierr.CodeTimeout
	CodeInternalError         = apierr.CodeInternalError
)

// maxBodyBytes bounds request bodies; a 1MB grid is far beyond any real board
const maxBodyBytes = 1 << 20

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return NewInvalidRequestError("Request body too large")
		}
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}
