package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/apierr"
	"github.com/Alan-Collins/SpellTower-solver/internal/api/sse"
	"github.com/Alan-Collins/SpellTower-solver/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// A panic before any output becomes a JSON 500; a panic while a solve
// stream is open ends the stream with an error event.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	if sse.Started(w) {
		_ = sse.WriteEvent(w, sse.EventError, apierr.FromError(apierr.NewInternalError()))
		return
	}
	apierr.WriteError(w, apierr.NewInternalError())
}
