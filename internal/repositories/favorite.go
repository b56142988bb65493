package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/foodcodex/internal/models"
)

// FavoriteRepository persists [models.Favorite] rows in the favorites table.
//
// The UNIQUE(user_id, meal_id) constraint makes Add idempotent via INSERT OR IGNORE.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new [FavoriteRepository] with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List retrieves all favorites of userID, newest first. An empty userID yields an empty slice.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	if userID == "" {
		return favorites, nil
	}

	query := `
		SELECT id, user_id, meal_id, meal_name, meal_thumbnail, category, area, instructions, ingredients
		FROM favorites
		WHERE user_id = ?
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fav         models.Favorite
			ingredients sql.NullString
		)

		err := rows.Scan(&fav.ID, &fav.UserID, &fav.MealID, &fav.MealName, &fav.MealThumbnail,
			&fav.Category, &fav.Area, &fav.Instructions, &ingredients)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		if ingredients.Valid {
			if fav.Ingredients, err = decodeIngredients(ingredients.String); err != nil {
				return nil, fmt.Errorf("favorite %d: %w", fav.ID, err)
			}
			if len(fav.Ingredients) == 0 {
				fav.Ingredients = nil
			}
		}

		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favorites, nil
}

// Exists reports whether userID has favorited mealID
func (r *FavoriteRepository) Exists(ctx context.Context, userID, mealID string) (bool, error) {
	if userID == "" || mealID == "" {
		return false, nil
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND meal_id = ?)`
	if err := r.db.QueryRowContext(ctx, query, userID, mealID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query favorite: %w", err)
	}
	return exists, nil
}

// Add inserts a favorite unless (userID, meal.MealID) already exists, in which case it does nothing.
func (r *FavoriteRepository) Add(ctx context.Context, userID string, meal models.FavoriteFields) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}
	if err := meal.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var ingredients sql.NullString
	if meal.Ingredients != nil {
		text, err := encodeIngredients(meal.Ingredients)
		if err != nil {
			return err
		}
		ingredients = sql.NullString{String: text, Valid: true}
	}

	query := `
		INSERT OR IGNORE INTO favorites
			(user_id, meal_id, meal_name, meal_thumbnail, category, area, instructions, ingredients)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userID, meal.MealID, meal.MealName, meal.MealThumbnail,
		meal.Category, meal.Area, meal.Instructions, ingredients)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	return nil
}

// Remove deletes the favorites matching userID and mealID. No match is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, mealID string) error {
	if userID == "" {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND meal_id = ?`, userID, mealID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}
