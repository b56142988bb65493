package flat

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/foodcodex/internal/kv"
	"github.com/desertthunder/foodcodex/internal/models"
)

func favoriteID(f models.Favorite) int64 { return f.ID }

// ListFavorites returns userID's favorites, newest first. An empty userID yields an empty slice.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	if userID == "" {
		return []models.Favorite{}, nil
	}

	favorites, err := load[models.Favorite](ctx, s.kv, FavoritesKey(userID))
	if err != nil {
		return nil, err
	}
	sortByIDDesc(favorites, favoriteID)
	return favorites, nil
}

// IsFavorite reports whether userID has favorited mealID.
func (s *Store) IsFavorite(ctx context.Context, userID, mealID string) (bool, error) {
	if userID == "" || mealID == "" {
		return false, nil
	}

	favorites, err := load[models.Favorite](ctx, s.kv, FavoritesKey(userID))
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(favorites, func(f models.Favorite) bool { return f.MealID == mealID }), nil
}

// AddFavorite appends a favorite unless userID already has one for meal.MealID.
func (s *Store) AddFavorite(ctx context.Context, userID string, meal models.FavoriteFields) error {
	if err := models.RequireUserID(userID); err != nil {
		return err
	}
	if err := meal.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := FavoritesKey(userID)
	favorites, err := load[models.Favorite](ctx, s.kv, key)
	if err != nil {
		return err
	}

	if slices.ContainsFunc(favorites, func(f models.Favorite) bool { return f.MealID == meal.MealID }) {
		return nil
	}

	id, seqOp, err := s.nextID(ctx, "favorites")
	if err != nil {
		return err
	}

	favorites = append(favorites, models.NewFavorite(id, userID, meal))

	op, err := encode(key, favorites)
	if err != nil {
		return err
	}
	if err := s.kv.Batch(ctx, []kv.Op{seqOp, op}); err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes every favorite of userID with mealID. No match is not an error.
func (s *Store) RemoveFavorite(ctx context.Context, userID, mealID string) error {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := FavoritesKey(userID)
	favorites, err := load[models.Favorite](ctx, s.kv, key)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(favorites, func(f models.Favorite) bool { return f.MealID == mealID })
	if len(kept) == len(favorites) {
		return nil
	}

	op, err := encode(key, kept)
	if err != nil {
		return err
	}
	if err := s.kv.Batch(ctx, []kv.Op{op}); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}
