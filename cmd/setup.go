package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if needed and initializes the configured
// storage backend.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
		}
	}

	backend := cmd.String("backend")
	if backend == "" {
		backend = r.config.Database.Backend
	}

	switch backend {
	case "", "sqlite":
		r.logger.Info("initializing database", "path", r.config.Database.Path)

		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		r.logger.Infof("setup complete for database: %v", r.config.Database.Path)

	case "kv":
		r.logger.Info("initializing data directory", "path", r.config.Database.DataDir)

		if err := os.MkdirAll(r.config.Database.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		r.logger.Infof("setup complete for data directory: %v", r.config.Database.DataDir)

	default:
		return fmt.Errorf("%w: unknown backend %q", shared.ErrInvalidFlag, backend)
	}

	return nil
}
