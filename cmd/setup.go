package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/repositories"
	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/desertthunder/foodcodex/internal/storage"
	"github.com/urfave/cli/v3"
)

// SetupDatabase selects the storage backend from the config file and creates its schema.
//
// A missing config file is created from the template first.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing storage", "backend", config.Storage.Backend, "path", config.Database.Path)

	svc, err := storage.Open(ctx, config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer svc.Close()

	if err := svc.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	r.writePlain("%s storage ready (backend: %s)\n", r.palette.OK("✓"), svc.Backend())
	if config.Storage.Backend == shared.BackendAuto && svc.Backend() == models.BackendFlat {
		r.writePlain("%s\n", r.palette.Warn("! sqlite unavailable at %s, using the flat store", config.Database.Path))
	}

	if store, ok := svc.Store().(*repositories.SQLStore); ok {
		version, err := shared.CurrentVersion(ctx, store.DB())
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		r.writePlain("Database: %s\n", config.Database.Path)
		r.writePlain("Schema version: %d\n", version)
	} else if svc.Backend() == models.BackendFlat {
		r.writePlain("Flat store engine: %s\n", config.Storage.Flat.Engine)
	}

	r.logger.Infof("setup complete for backend: %v", svc.Backend())
	return nil
}

// SetupRollback rolls back the most recent SQLite migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if config.Storage.Backend == shared.BackendFlat {
		return fmt.Errorf("%w: rollback applies to the sqlite backend only", shared.ErrInvalidArgument)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, 1, 1)

	r.logger.Info("rolling back migration", "path", config.Database.Path)
	if err := shared.RollbackMigration(ctx, db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	version, err := shared.CurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.writePlain("%s rolled back, schema version: %d\n", r.palette.OK("✓"), version)
	return nil
}

// SetupConfig writes the default configuration to the --config path.
//
// With any storage flag set, the existing file (or the defaults) is updated instead and saved back.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	overrides := map[string]*string{
		"backend":   &config.Storage.Backend,
		"engine":    &config.Storage.Flat.Engine,
		"db-path":   &config.Database.Path,
		"flat-dir":  &config.Storage.Flat.Dir,
		"redis-url": &config.Storage.Flat.RedisURL,
	}

	changed := false
	for name, field := range overrides {
		if cmd.IsSet(name) {
			*field = cmd.String(name)
			changed = true
		}
	}

	if !changed {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", configPath)
		r.writePlain("%s config written to %s\n", r.palette.OK("✓"), configPath)
		return nil
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := shared.SaveConfig(configPath, config); err != nil {
		return err
	}

	r.logger.Info("config file saved", "path", configPath, "backend", config.Storage.Backend)
	r.writePlain("%s config saved to %s (backend: %s, engine: %s)\n",
		r.palette.OK("✓"), configPath, config.Storage.Backend, config.Storage.Flat.Engine)
	return nil
}
