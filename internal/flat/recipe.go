package flat

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/foodcodex/internal/kv"
	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

func recipeID(r models.UserRecipe) int64 { return r.ID }

// ListRecipes returns userID's recipes, newest first. An empty userID yields an empty slice.
func (s *Store) ListRecipes(ctx context.Context, userID string) ([]models.UserRecipe, error) {
	if userID == "" {
		return []models.UserRecipe{}, nil
	}

	recipes, err := load[models.UserRecipe](ctx, s.kv, RecipesKey(userID))
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []string{}
		}
	}
	sortByIDDesc(recipes, recipeID)
	return recipes, nil
}

// GetRecipe returns the recipe matching userID and id, or [shared.ErrRecipeNotFound].
func (s *Store) GetRecipe(ctx context.Context, userID string, id int64) (*models.UserRecipe, error) {
	if err := models.RequireUserID(userID); err != nil {
		return nil, err
	}

	recipes, err := s.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(recipes, func(r models.UserRecipe) bool { return r.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrRecipeNotFound, id)
	}
	return &recipes[i], nil
}

// CreateRecipe appends a recipe to userID's collection and returns its new id.
func (s *Store) CreateRecipe(ctx context.Context, userID string, fields models.RecipeFields) (int64, error) {
	if err := models.RequireUserID(userID); err != nil {
		return 0, err
	}
	if err := fields.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := RecipesKey(userID)
	recipes, err := load[models.UserRecipe](ctx, s.kv, key)
	if err != nil {
		return 0, err
	}

	id, seqOp, err := s.nextID(ctx, "user_recipes")
	if err != nil {
		return 0, err
	}

	recipe := models.NewUserRecipe(id, userID, fields)
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	recipes = append(recipes, recipe)

	op, err := encode(key, recipes)
	if err != nil {
		return 0, err
	}

	if err := s.kv.Batch(ctx, []kv.Op{seqOp, op}); err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}
	return id, nil
}

// UpdateRecipe replaces the mutable fields of the recipe matching userID and id.
// No matching recipe is not an error.
func (s *Store) UpdateRecipe(ctx context.Context, userID string, id int64, fields models.RecipeFields) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := RecipesKey(userID)
	recipes, err := load[models.UserRecipe](ctx, s.kv, key)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(recipes, func(r models.UserRecipe) bool { return r.ID == id })
	if i < 0 {
		return nil
	}

	recipes[i].Apply(fields)
	if recipes[i].Ingredients == nil {
		recipes[i].Ingredients = []string{}
	}

	op, err := encode(key, recipes)
	if err != nil {
		return err
	}
	if err := s.kv.Batch(ctx, []kv.Op{op}); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

// DeleteRecipe removes the recipe matching userID and id and the user's "user_<id>" favorite,
// writing both keys in one batch, favorites first. No matching recipe is not an error.
func (s *Store) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipesKey, favoritesKey := RecipesKey(userID), FavoritesKey(userID)

	recipes, err := load[models.UserRecipe](ctx, s.kv, recipesKey)
	if err != nil {
		return err
	}
	favorites, err := load[models.Favorite](ctx, s.kv, favoritesKey)
	if err != nil {
		return err
	}

	var ops []kv.Op

	// Favorites go first: engines that apply a batch key by key must never leave a favorite
	// pointing at a deleted recipe.
	mealID := models.UserRecipeMealID(id)
	keptFavorites := slices.DeleteFunc(favorites, func(f models.Favorite) bool { return f.MealID == mealID })
	if len(keptFavorites) != len(favorites) {
		op, err := encode(favoritesKey, keptFavorites)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}

	keptRecipes := slices.DeleteFunc(recipes, func(r models.UserRecipe) bool { return r.ID == id })
	if len(keptRecipes) != len(recipes) {
		op, err := encode(recipesKey, keptRecipes)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}

	if len(ops) == 0 {
		return nil
	}
	if err := s.kv.Batch(ctx, ops); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
