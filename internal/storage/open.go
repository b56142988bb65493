package storage

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/foodcodex/internal/flat"
	"github.com/desertthunder/foodcodex/internal/kv"
	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/repositories"
	"github.com/desertthunder/foodcodex/internal/shared"
)

// Open selects a backend from cfg and returns a [Service] over it.
//
// A nil cfg uses [shared.DefaultConfig].
func Open(ctx context.Context, cfg *shared.Config, logger *log.Logger) (*Service, error) {
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("storage backend selected", "backend", store.Backend())
	return New(store, logger), nil
}

func openStore(ctx context.Context, cfg *shared.Config, logger *log.Logger) (models.Store, error) {
	switch cfg.Storage.Backend {
	case shared.BackendSQLite:
		return openStructured(cfg.Database)
	case shared.BackendFlat:
		return openFlat(ctx, cfg.Storage.Flat)
	default:
		store, err := openStructured(cfg.Database)
		if err == nil {
			return store, nil
		}
		logger.Warn("sqlite unavailable, using flat store", "path", cfg.Database.Path, "engine", cfg.Storage.Flat.Engine, "error", err)
		return openFlat(ctx, cfg.Storage.Flat)
	}
}

func openStructured(cfg shared.DatabaseConfig) (*repositories.SQLStore, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, err
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	if maxIdle <= 0 {
		maxIdle = 1
	}
	shared.ConfigureDatabase(db, maxOpen, maxIdle)

	return repositories.NewSQLStore(db), nil
}

func openFlat(ctx context.Context, cfg shared.FlatConfig) (*flat.Store, error) {
	engine, err := openEngine(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: flat store: %v", shared.ErrBackendUnavailable, err)
	}
	return flat.New(engine), nil
}

func openEngine(ctx context.Context, cfg shared.FlatConfig) (kv.Store, error) {
	switch cfg.Engine {
	case shared.EngineRedis:
		return kv.NewRedis(ctx, cfg.RedisURL, "")
	case shared.EngineMemory:
		return kv.NewMemory(), nil
	default:
		return kv.NewFile(cfg.Dir)
	}
}
