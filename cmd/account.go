package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/foodcodex/internal/formatter"
	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// AccountErase deletes every recipe and favorite of a user. Requires --yes.
func (r *Runner) AccountErase(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	if !cmd.Bool("yes") {
		r.writePlain("%s\n", r.palette.Warn("! this deletes every recipe and favorite of %s", userID))
		return fmt.Errorf("%w: pass --yes to erase all data for %s", shared.ErrMissingArgument, userID)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	if err := svc.DeleteAllUserData(ctx, userID); err != nil {
		return err
	}
	return r.writePlain("%s erased all recipes and favorites for %s\n", r.palette.OK("✓"), userID)
}

// AccountExport writes a user's recipes and favorites to files in the requested format.
func (r *Runner) AccountExport(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	format := cmd.String("format")
	outputDir := cmd.String("output")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	data, err := svc.Export(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read user data: %w", err)
	}

	r.logger.Info("exporting user data", "user", userID, "format", format, "recipes", len(data.Recipes), "favorites", len(data.Favorites))

	result, err := formatter.WriteExport(data, format, outputDir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("%s exported %d recipes and %d favorites\n", r.palette.OK("✓"), len(data.Recipes), len(data.Favorites))
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}
	return nil
}
