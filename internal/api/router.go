package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mcoot/playeradmin/internal/api/apierr"
	"github.com/mcoot/playeradmin/internal/api/handler"
	"github.com/mcoot/playeradmin/internal/api/middleware"
	"github.com/mcoot/playeradmin/internal/api/response"
	sharedmw "github.com/mcoot/playeradmin/internal/middleware"
	"github.com/mcoot/playeradmin/internal/services/auth"
	"github.com/mcoot/playeradmin/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	PlayerService *player.Service

	// AllowedOrigins enables CORS for the listed browser origins
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	adminOnly := middleware.RequireAdmin(cfg.AuthService)
	guarded := func(h http.HandlerFunc) http.Handler { return adminOnly(h) }

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	api.Use(sharedmw.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(sharedmw.Logging(cfg.Logger))

	// Reads are public
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/count", playerHandler.Count).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)

	// Mutations require the admin password when one is configured
	api.Handle("/players", guarded(playerHandler.Create)).Methods(http.MethodPost)
	api.Handle("/players/{id}", guarded(playerHandler.Update)).Methods(http.MethodPost, http.MethodPatch)
	api.Handle("/players/{id}", guarded(playerHandler.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if len(cfg.AllowedOrigins) == 0 {
		return r
	}
	return handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", sharedmw.RequestIDHeader}),
		handlers.ExposedHeaders([]string{sharedmw.RequestIDHeader}),
	)(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Health{Status: "ok"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError(r.Method))
}
