package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/playeradmin/internal/api"
	"github.com/mcoot/playeradmin/internal/config"
	"github.com/mcoot/playeradmin/internal/factory"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	env, err := config.Load()
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: env.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, factory.ConfigFromEnv(env, logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("application configured",
		slog.String("storage", env.StorageType),
		slog.Bool("admin_auth", app.AuthService.Enabled()),
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		AllowedOrigins: env.CORSAllowedOrigins,
	}))

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = env.Host
	serverConfig.Port = env.Port

	return api.NewServer(mux, serverConfig, logger).Run(ctx)
}
