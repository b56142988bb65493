package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

const recipeColumns = `id, user_id, name, category, area, instructions, image_uri, ingredients`

// RecipeRepository persists [models.UserRecipe] rows in the user_recipes table.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new [RecipeRepository] with the given database connection
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List retrieves all recipes owned by userID, newest first. An empty userID yields an empty slice.
func (r *RecipeRepository) List(ctx context.Context, userID string) ([]models.UserRecipe, error) {
	recipes := []models.UserRecipe{}
	if userID == "" {
		return recipes, nil
	}

	query := `SELECT ` + recipeColumns + ` FROM user_recipes WHERE user_id = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return recipes, nil
}

// Get retrieves a single recipe by owner and id
func (r *RecipeRepository) Get(ctx context.Context, userID string, id int64) (*models.UserRecipe, error) {
	if err := models.RequireUserID(userID); err != nil {
		return nil, err
	}

	query := `SELECT ` + recipeColumns + ` FROM user_recipes WHERE id = ? AND user_id = ?`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Create inserts a new recipe and returns the id assigned by SQLite.
//
// AUTOINCREMENT guarantees ids are never reused, even after the newest recipe is deleted.
func (r *RecipeRepository) Create(ctx context.Context, userID string, fields models.RecipeFields) (int64, error) {
	if err := models.RequireUserID(userID); err != nil {
		return 0, err
	}
	if err := fields.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	ingredients, err := encodeIngredients(fields.Ingredients)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO user_recipes (user_id, name, category, area, instructions, image_uri, ingredients)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID, fields.Name, fields.Category, fields.Area, fields.Instructions, nullString(fields.ImageURI), ingredients)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// Update replaces every mutable field of the recipe matching id and userID.
// No matching row is not an error.
func (r *RecipeRepository) Update(ctx context.Context, userID string, id int64, fields models.RecipeFields) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ingredients, err := encodeIngredients(fields.Ingredients)
	if err != nil {
		return err
	}

	query := `
		UPDATE user_recipes
		SET name = ?, category = ?, area = ?, instructions = ?, image_uri = ?, ingredients = ?
		WHERE id = ? AND user_id = ?
	`

	_, err = r.db.ExecContext(ctx, query,
		fields.Name, fields.Category, fields.Area, fields.Instructions, nullString(fields.ImageURI), ingredients, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	return nil
}

// Delete removes the recipe matching id and userID together with the user's favorite of it.
// Both deletes share one transaction. No matching row is not an error.
func (r *RecipeRepository) Delete(ctx context.Context, userID string, id int64) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_recipes WHERE id = ? AND user_id = ?`, id, userID); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}

		_, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND meal_id = ?`, userID, models.UserRecipeMealID(id))
		if err != nil {
			return fmt.Errorf("failed to delete recipe favorite: %w", err)
		}
		return nil
	})
}

func scanRecipe(s scanner) (*models.UserRecipe, error) {
	var (
		recipe      models.UserRecipe
		imageURI    sql.NullString
		ingredients string
	)

	err := s.Scan(&recipe.ID, &recipe.UserID, &recipe.Name, &recipe.Category, &recipe.Area,
		&recipe.Instructions, &imageURI, &ingredients)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}

	if imageURI.Valid {
		recipe.ImageURI = &imageURI.String
	}

	if recipe.Ingredients, err = decodeIngredients(ingredients); err != nil {
		return nil, fmt.Errorf("recipe %d: %w", recipe.ID, err)
	}

	return &recipe, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
