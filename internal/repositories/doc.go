// Package repositories implements the structured storage backend on SQLite.
//
// Key Implementations:
//   - [RecipeRepository] : Personal recipes in user_recipes, ingredients stored as a JSON text column
//   - [FavoriteRepository] : Favorites with a UNIQUE(user_id, meal_id) constraint backing idempotent adds
//   - [SQLStore] : Composes both repositories into a models.Store and adds the bulk user erase
//
// Every query is scoped by user_id. Deleting a recipe also removes the user's "user_<id>" favorite of it,
// and erasing a user's data clears both tables, each inside a single transaction.
//
// Update and delete of a missing id succeed without changes, matching the flat backend.
package repositories
