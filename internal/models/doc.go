// Package models defines the recipe and favorite entities and the storage contract for the foodcodex local store.
//
// Entities:
//   - [UserRecipe] : A recipe authored by a user; ingredients are an ordered list of free-form lines
//   - [Favorite] : A user's bookmark of a catalog meal or a personal recipe, unique per (user, meal id)
//
// Input records [RecipeFields] and [FavoriteFields] carry validate struct tags checked with go-playground/validator.
//
// A favorite of a personal recipe uses the meal id "user_<recipe id>" (see [UserRecipeMealID]) and carries a
// denormalized copy of the recipe, so it stays readable after the recipe is edited or deleted.
//
// The [Store] interface is implemented by repositories.SQLStore (structured backend) and flat.Store (flat backend).
package models
