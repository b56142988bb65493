// package repositories provides the SQLite-backed (structured) implementation of [models.Store].
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

// SQLStore implements [models.Store] on an embedded SQLite database.
type SQLStore struct {
	db        *sql.DB
	Recipes   *RecipeRepository
	Favorites *FavoriteRepository
}

// NewSQLStore creates a new [SQLStore] with the given database connection
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:        db,
		Recipes:   NewRecipeRepository(db),
		Favorites: NewFavoriteRepository(db),
	}
}

// Backend returns [models.BackendStructured].
func (s *SQLStore) Backend() models.Backend { return models.BackendStructured }

// Init creates the favorites and user_recipes tables by applying pending migrations.
func (s *SQLStore) Init(ctx context.Context) error {
	return shared.RunMigrations(ctx, s.db)
}

// DB returns the underlying connection.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *SQLStore) Close() error { return s.db.Close() }

// DeleteAllUserData deletes every recipe and favorite owned by userID in one transaction.
func (s *SQLStore) DeleteAllUserData(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_recipes WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to delete user recipes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to delete user favorites: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) ListRecipes(ctx context.Context, userID string) ([]models.UserRecipe, error) {
	return s.Recipes.List(ctx, userID)
}

func (s *SQLStore) GetRecipe(ctx context.Context, userID string, id int64) (*models.UserRecipe, error) {
	return s.Recipes.Get(ctx, userID, id)
}

func (s *SQLStore) CreateRecipe(ctx context.Context, userID string, fields models.RecipeFields) (int64, error) {
	return s.Recipes.Create(ctx, userID, fields)
}

func (s *SQLStore) UpdateRecipe(ctx context.Context, userID string, id int64, fields models.RecipeFields) error {
	return s.Recipes.Update(ctx, userID, id, fields)
}

func (s *SQLStore) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	return s.Recipes.Delete(ctx, userID, id)
}

func (s *SQLStore) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.Favorites.List(ctx, userID)
}

func (s *SQLStore) IsFavorite(ctx context.Context, userID, mealID string) (bool, error) {
	return s.Favorites.Exists(ctx, userID, mealID)
}

func (s *SQLStore) AddFavorite(ctx context.Context, userID string, meal models.FavoriteFields) error {
	return s.Favorites.Add(ctx, userID, meal)
}

func (s *SQLStore) RemoveFavorite(ctx context.Context, userID, mealID string) error {
	return s.Favorites.Remove(ctx, userID, mealID)
}

// withTx runs fn in a transaction, committing when fn returns nil.
//
// Statements inside fn must use tx: with a single-connection pool, using the *sql.DB would block forever.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// encodeIngredients serializes ingredient lines as a JSON array. A nil slice encodes as "[]".
func encodeIngredients(ingredients []string) (string, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	b, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("failed to encode ingredients: %w", err)
	}
	return string(b), nil
}

// decodeIngredients parses the ingredients column. Empty and null values decode to an empty slice.
func decodeIngredients(text string) ([]string, error) {
	ingredients := []string{}
	if text == "" || text == "null" {
		return ingredients, nil
	}
	if err := json.Unmarshal([]byte(text), &ingredients); err != nil {
		return nil, fmt.Errorf("%w: ingredients: %v", shared.ErrCorruptRecord, err)
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	return ingredients, nil
}

// scanner is satisfied by [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}
