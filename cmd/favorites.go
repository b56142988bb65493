package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints a user's favorites.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	favorites, err := svc.ListFavorites(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(favorites, cmd.Bool("pretty"))
	}

	if len(favorites) == 0 {
		return r.writePlain("No favorites for %s\n", userID)
	}

	r.writePlainHeader(fmt.Sprintf("Favorites for %s (%d)", userID, len(favorites)))
	for _, f := range favorites {
		name := f.MealName
		if name == "" {
			name = f.MealID
		}
		marker := ""
		if f.IsUserRecipe() {
			marker = " " + r.palette.Help("[my recipe]")
		}
		r.writePlain("%s\t%s%s\n", f.MealID, name, marker)
	}
	return nil
}

// FavoritesAdd favorites a catalog meal.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	mealID := cmd.StringArg("meal-id")
	if mealID == "" {
		return fmt.Errorf("%w: meal-id", shared.ErrMissingArgument)
	}

	meal := models.FavoriteFields{
		MealID:        mealID,
		MealName:      cmd.String("name"),
		MealThumbnail: cmd.String("thumbnail"),
		Category:      cmd.String("category"),
		Area:          cmd.String("area"),
		Instructions:  cmd.String("instructions"),
	}
	for _, ingredient := range cmd.StringSlice("ingredient") {
		if ingredient = strings.TrimSpace(ingredient); ingredient != "" {
			meal.Ingredients = append(meal.Ingredients, ingredient)
		}
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	if !svc.AddFavorite(ctx, userID, meal) {
		r.writePlain("%s could not favorite %s\n", r.palette.Err("✗"), mealID)
		return fmt.Errorf("failed to add favorite %s", mealID)
	}
	return r.writePlain("%s favorited %s\n", r.palette.OK("✓"), mealID)
}

// FavoritesAddRecipe favorites one of the user's recipes under its "user_<id>" meal id.
func (r *Runner) FavoritesAddRecipe(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	id := cmd.Int64("id")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	if !svc.FavoriteRecipe(ctx, userID, id) {
		r.writePlain("%s could not favorite recipe %d\n", r.palette.Err("✗"), id)
		return fmt.Errorf("failed to favorite recipe %d", id)
	}
	return r.writePlain("%s favorited %s\n", r.palette.OK("✓"), models.UserRecipeMealID(id))
}

// FavoritesRemove removes a favorite. Removing a missing favorite succeeds.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	mealID := cmd.StringArg("meal-id")
	if mealID == "" {
		return fmt.Errorf("%w: meal-id", shared.ErrMissingArgument)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	if err := svc.RemoveFavorite(ctx, userID, mealID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return r.writePlain("%s removed %s\n", r.palette.OK("✓"), mealID)
}

// FavoritesCheck reports whether a meal is in the user's favorites.
func (r *Runner) FavoritesCheck(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	mealID := cmd.StringArg("meal-id")
	if mealID == "" {
		return fmt.Errorf("%w: meal-id", shared.ErrMissingArgument)
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	fav, err := svc.IsFavorite(ctx, userID, mealID)
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"meal_id": mealID, "favorite": fav}, false)
	}
	if fav {
		return r.writePlain("%s is a favorite\n", mealID)
	}
	return r.writePlain("%s is not a favorite\n", mealID)
}
