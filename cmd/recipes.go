package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecipesList prints a user's recipes.
func (r *Runner) RecipesList(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	recipes, err := svc.ListRecipes(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(recipes, cmd.Bool("pretty"))
	}

	if len(recipes) == 0 {
		return r.writePlain("No recipes for %s\n", userID)
	}

	r.writePlainHeader(fmt.Sprintf("Recipes for %s (%d)", userID, len(recipes)))
	for _, recipe := range recipes {
		r.writePlain("%d\t%s%s\n", recipe.ID, recipe.Name, r.describe(recipe.Category, recipe.Area))
	}
	return nil
}

// RecipesShow prints a single recipe.
func (r *Runner) RecipesShow(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	id := cmd.Int64("id")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	recipe, err := svc.GetRecipe(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to get recipe %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(recipe, cmd.Bool("pretty"))
	}

	r.writePlainHeader(recipe.Name)
	r.writePlain("ID: %d\n", recipe.ID)
	if recipe.Category != "" {
		r.writePlain("Category: %s\n", recipe.Category)
	}
	if recipe.Area != "" {
		r.writePlain("Area: %s\n", recipe.Area)
	}
	if recipe.ImageURI != nil {
		r.writePlain("Image: %s\n", *recipe.ImageURI)
	}

	if len(recipe.Ingredients) > 0 {
		r.writePlainln("Ingredients:")
		for _, ingredient := range recipe.Ingredients {
			r.writePlain("  - %s\n", ingredient)
		}
	}
	if recipe.Instructions != "" {
		r.writePlainln("Instructions:")
		r.writePlain("%s\n", recipe.Instructions)
	}

	if fav, err := svc.IsFavorite(ctx, userID, recipe.MealID()); err == nil && fav {
		r.writePlainln("%s", r.palette.Help("★ favorited"))
	}
	return nil
}

// RecipesAdd creates a recipe from flags.
func (r *Runner) RecipesAdd(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")

	fields, err := recipeFields(cmd)
	if err != nil {
		return err
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("creating recipe", "user", userID, "name", fields.Name)

	id, err := svc.CreateRecipe(ctx, userID, fields)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]int64{"id": id}, false)
	}
	return r.writePlain("%s created recipe %d\n", r.palette.OK("✓"), id)
}

// RecipesUpdate replaces every field of a recipe with the given flags.
func (r *Runner) RecipesUpdate(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	id := cmd.Int64("id")

	fields, err := recipeFields(cmd)
	if err != nil {
		return err
	}

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("updating recipe", "user", userID, "id", id)

	if err := svc.UpdateRecipe(ctx, userID, id, fields); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return r.writePlain("%s updated recipe %d\n", r.palette.OK("✓"), id)
}

// RecipesDelete removes a recipe. Deleting a missing recipe succeeds.
func (r *Runner) RecipesDelete(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	id := cmd.Int64("id")

	svc, err := r.service(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("deleting recipe", "user", userID, "id", id)

	if err := svc.DeleteRecipe(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return r.writePlain("%s deleted recipe %d\n", r.palette.OK("✓"), id)
}

// recipeFields reads the editable recipe flags.
//
// Ingredients are gathered from --ingredient, then --ingredients, then --ingredients-file, in that order.
func recipeFields(cmd *cli.Command) (models.RecipeFields, error) {
	fields := models.RecipeFields{
		Name:         cmd.String("name"),
		Category:     cmd.String("category"),
		Area:         cmd.String("area"),
		Instructions: cmd.String("instructions"),
		Ingredients:  []string{},
	}

	if cmd.IsSet("image") {
		image := cmd.String("image")
		fields.ImageURI = &image
	}

	for _, ingredient := range cmd.StringSlice("ingredient") {
		if ingredient = strings.TrimSpace(ingredient); ingredient != "" {
			fields.Ingredients = append(fields.Ingredients, ingredient)
		}
	}
	fields.Ingredients = append(fields.Ingredients, models.ParseIngredients(cmd.String("ingredients"))...)

	if path := cmd.String("ingredients-file"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return fields, fmt.Errorf("%w: failed to read ingredients file: %v", shared.ErrInvalidArgument, err)
		}
		fields.Ingredients = append(fields.Ingredients, models.ParseIngredients(string(content))...)
	}

	return fields, nil
}

func (r *Runner) describe(category, area string) string {
	parts := []string{}
	for _, p := range []string{category, area} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + r.palette.Help("(%s)", strings.Join(parts, ", "))
}
