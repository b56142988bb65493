package models

import (
	"strings"
)

// UserRecipe is a recipe authored by a user and stored locally.
type UserRecipe struct {
	ID           int64    `json:"id"`
	UserID       string   `json:"user_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Instructions string   `json:"instructions"`
	ImageURI     *string  `json:"image_uri"`
	Ingredients  []string `json:"ingredients"`
}

// RecipeFields holds the mutable fields of a [UserRecipe], used for create and full-replace update.
type RecipeFields struct {
	Name         string   `json:"name" validate:"required,notblank"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Instructions string   `json:"instructions"`
	ImageURI     *string  `json:"image_uri"`
	Ingredients  []string `json:"ingredients"`
}

// Validate checks that the recipe has a name.
func (f RecipeFields) Validate() error {
	return validateStruct("recipe", f)
}

// Fields returns the mutable fields of r.
func (r UserRecipe) Fields() RecipeFields {
	return RecipeFields{
		Name:         r.Name,
		Category:     r.Category,
		Area:         r.Area,
		Instructions: r.Instructions,
		ImageURI:     cloneString(r.ImageURI),
		Ingredients:  CloneIngredients(r.Ingredients),
	}
}

// Apply overwrites the mutable fields of r with f.
func (r *UserRecipe) Apply(f RecipeFields) {
	r.Name = f.Name
	r.Category = f.Category
	r.Area = f.Area
	r.Instructions = f.Instructions
	r.ImageURI = cloneString(f.ImageURI)
	r.Ingredients = CloneIngredients(f.Ingredients)
}

// NewUserRecipe builds a recipe owned by userID from f.
func NewUserRecipe(id int64, userID string, f RecipeFields) UserRecipe {
	r := UserRecipe{ID: id, UserID: userID}
	r.Apply(f)
	return r
}

// MealID returns the favorite meal id of this recipe, see [UserRecipeMealID].
func (r UserRecipe) MealID() string {
	return UserRecipeMealID(r.ID)
}

// FavoriteFields returns a self-contained favorite snapshot of r.
func (r UserRecipe) FavoriteFields() FavoriteFields {
	f := FavoriteFields{
		MealID:       r.MealID(),
		MealName:     r.Name,
		Category:     r.Category,
		Area:         r.Area,
		Instructions: r.Instructions,
		Ingredients:  CloneIngredients(r.Ingredients),
	}
	if r.ImageURI != nil {
		f.MealThumbnail = *r.ImageURI
	}
	if f.Ingredients == nil {
		f.Ingredients = []string{}
	}
	return f
}

// ParseIngredients splits free-form text into one ingredient per line, trimming whitespace and dropping blank lines.
func ParseIngredients(text string) []string {
	ingredients := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ingredients = append(ingredients, line)
		}
	}
	return ingredients
}

// CloneIngredients copies s. A nil slice stays nil.
func CloneIngredients(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
