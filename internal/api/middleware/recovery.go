package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playeradmin/internal/api/apierr"
	"github.com/mcoot/playeradmin/internal/middleware"
)

// Recovery answers panics with the JSON INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
