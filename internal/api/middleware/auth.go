package middleware

import (
	"net/http"

	"github.com/mcoot/playeradmin/internal/api/apierr"
	"github.com/mcoot/playeradmin/internal/services/auth"
)

// RequireAdmin rejects requests without a valid admin bearer token.
// It passes everything through when the auth service is disabled.
func RequireAdmin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if err := authService.AuthenticateHeader(header); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
