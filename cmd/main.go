package main

import (
	"context"
	"os"

	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load config, using defaults %v", err)
		}
	}

	if configured, err := shared.NewConfiguredLogger(os.Stderr, config.Log); err == nil {
		logger = configured
	} else {
		logger.Warn("invalid log settings, using defaults", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "foodcodex",
		Usage:    "Manage locally stored recipes and favorites",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}
