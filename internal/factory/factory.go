package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/playeradmin/internal/config"
	"github.com/mcoot/playeradmin/internal/dependencies/clock"
	"github.com/mcoot/playeradmin/internal/dependencies/random"
	"github.com/mcoot/playeradmin/internal/services/auth"
	"github.com/mcoot/playeradmin/internal/services/player"
	"github.com/mcoot/playeradmin/internal/services/seed"
	"github.com/mcoot/playeradmin/internal/storage"
	"github.com/mcoot/playeradmin/internal/storage/memory"
	mongostorage "github.com/mcoot/playeradmin/internal/storage/mongo"
	redisstorage "github.com/mcoot/playeradmin/internal/storage/redis"
	sqlitestorage "github.com/mcoot/playeradmin/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
	StorageTypeSQLite = config.StorageSQLite
	StorageTypeMongo  = config.StorageMongo
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	PlayerService *player.Service
	AuthService   *auth.Service
	SeedGenerator *seed.Generator

	closer func(context.Context) error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig is required if StorageType is "redis"
	RedisConfig *redisstorage.Config
	// SQLitePath is required if StorageType is "sqlite"
	SQLitePath string
	// MongoConfig is required if StorageType is "mongo"
	MongoConfig *mongostorage.Config
	// AdminPasswordHash enables admin auth when set
	AdminPasswordHash string
}

// ConfigFromEnv maps loaded environment settings onto a factory Config
func ConfigFromEnv(env config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:            logger,
		StorageType:       env.StorageType,
		SQLitePath:        env.SQLitePath,
		AdminPasswordHash: env.AdminPasswordHash,
	}
	if env.RedisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	if env.MongoURI != "" {
		cfg.MongoConfig = &mongostorage.Config{URI: env.MongoURI, Database: env.MongoDatabase}
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	authService, err := auth.New(cfg.AdminPasswordHash)
	if err != nil {
		return nil, err
	}

	store, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), authService, logger)
	app.closer = closer
	return app, nil
}

func openStorage(ctx context.Context, cfg Config) (storage.Storage, func(context.Context) error, error) {
	noClose := func(context.Context) error { return nil }

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), noClose, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis storage: %w", err)
		}
		return store, func(context.Context) error { return store.Close() }, nil
	case StorageTypeSQLite:
		store, err := sqlitestorage.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, func(context.Context) error { return store.Close() }, nil
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		store, err := mongostorage.New(ctx, *cfg.MongoConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo storage: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or mongo", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authService *auth.Service, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		PlayerService: player.New(store, logger),
		AuthService:   authService,
		SeedGenerator: seed.New(clk, rnd),
	}
}

// Close releases the storage backend
func (a *App) Close(ctx context.Context) error {
	if a.closer == nil {
		return nil
	}
	return a.closer(ctx)
}
