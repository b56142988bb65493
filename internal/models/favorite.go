package models

import (
	"strconv"
	"strings"
)

// UserRecipePrefix marks a favorite meal id that refers to a [UserRecipe] instead of a catalog meal.
const UserRecipePrefix = "user_"

// Favorite is a user's reference to a catalog meal or a personal recipe.
//
// Name, thumbnail and the optional detail fields are a snapshot taken when the favorite was added.
type Favorite struct {
	ID            int64    `json:"id"`
	UserID        string   `json:"user_id"`
	MealID        string   `json:"meal_id"`
	MealName      string   `json:"meal_name"`
	MealThumbnail string   `json:"meal_thumbnail"`
	Category      string   `json:"category,omitempty"`
	Area          string   `json:"area,omitempty"`
	Instructions  string   `json:"instructions,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
}

// FavoriteFields holds the data captured when favoriting a meal.
type FavoriteFields struct {
	MealID        string   `json:"meal_id" validate:"required,notblank"`
	MealName      string   `json:"meal_name"`
	MealThumbnail string   `json:"meal_thumbnail"`
	Category      string   `json:"category,omitempty"`
	Area          string   `json:"area,omitempty"`
	Instructions  string   `json:"instructions,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
}

// Validate checks that the favorite has a meal id.
func (f FavoriteFields) Validate() error {
	return validateStruct("favorite", f)
}

// NewFavorite builds a favorite owned by userID from f.
func NewFavorite(id int64, userID string, f FavoriteFields) Favorite {
	return Favorite{
		ID:            id,
		UserID:        userID,
		MealID:        f.MealID,
		MealName:      f.MealName,
		MealThumbnail: f.MealThumbnail,
		Category:      f.Category,
		Area:          f.Area,
		Instructions:  f.Instructions,
		Ingredients:   CloneIngredients(f.Ingredients),
	}
}

// IsUserRecipe reports whether the favorite refers to a personal recipe.
func (f Favorite) IsUserRecipe() bool {
	_, ok := ParseUserRecipeMealID(f.MealID)
	return ok
}

// UserRecipeMealID returns the favorite meal id for the personal recipe id, e.g. "user_42".
func UserRecipeMealID(id int64) string {
	return UserRecipePrefix + strconv.FormatInt(id, 10)
}

// ParseUserRecipeMealID extracts the recipe id from a meal id created by [UserRecipeMealID].
func ParseUserRecipeMealID(mealID string) (int64, bool) {
	rest, ok := strings.CutPrefix(mealID, UserRecipePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
