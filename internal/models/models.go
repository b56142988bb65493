// package models defines the data model for the local recipe store
package models

import "context"

// Backend identifies which storage implementation serves a [Store].
type Backend string

const (
	BackendStructured Backend = "structured" // embedded SQLite
	BackendFlat       Backend = "flat"       // one JSON array per user per entity in a key-value store
)

// RecipeStore defines CRUD operations over a user's personal recipes.
//
// Update and Delete require userID and are silent no-ops when no recipe matches.
type RecipeStore interface {
	ListRecipes(ctx context.Context, userID string) ([]UserRecipe, error)                 // ListRecipes returns recipes newest first
	GetRecipe(ctx context.Context, userID string, id int64) (*UserRecipe, error)          // GetRecipe returns one recipe or ErrRecipeNotFound
	CreateRecipe(ctx context.Context, userID string, fields RecipeFields) (int64, error)  // CreateRecipe stores a recipe and returns its new id
	UpdateRecipe(ctx context.Context, userID string, id int64, fields RecipeFields) error // UpdateRecipe replaces all mutable fields
	DeleteRecipe(ctx context.Context, userID string, id int64) error                      // DeleteRecipe removes a recipe and its favorite entry
}

// FavoriteStore defines operations over a user's favorites, unique per (userID, mealID).
type FavoriteStore interface {
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)      // ListFavorites returns favorites newest first
	IsFavorite(ctx context.Context, userID, mealID string) (bool, error)       // IsFavorite reports whether mealID is favorited
	AddFavorite(ctx context.Context, userID string, meal FavoriteFields) error // AddFavorite inserts unless already present
	RemoveFavorite(ctx context.Context, userID, mealID string) error           // RemoveFavorite deletes all matching entries
}

// Store is the storage contract shared by the structured and flat backends.
//
// Both implementations must be indistinguishable to callers: same inputs, same result shapes, same errors.
type Store interface {
	RecipeStore
	FavoriteStore

	Backend() Backend                                           // Backend names the implementation
	Init(ctx context.Context) error                             // Init ensures the schema exists; idempotent
	DeleteAllUserData(ctx context.Context, userID string) error // DeleteAllUserData erases every recipe and favorite of userID
	Close() error                                               // Close releases the underlying database or key-value store
}

// UserData is a snapshot of everything one user has stored, used by exports.
type UserData struct {
	UserID    string       `json:"user_id"`
	Backend   Backend      `json:"backend"`
	Recipes   []UserRecipe `json:"recipes"`
	Favorites []Favorite   `json:"favorites"`
}
