package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

// Service owns the selected [models.Store] and runs its schema initialization lazily.
type Service struct {
	store  models.Store
	logger *log.Logger

	mu    sync.Mutex
	ready bool
}

// New builds a [Service] around store. A nil logger defaults to [shared.NewLogger] on stderr.
func New(store models.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{
		store:  store,
		logger: shared.WithLogger(logger, "backend", string(store.Backend())),
	}
}

// Backend reports which backend was selected.
func (s *Service) Backend() models.Backend { return s.store.Backend() }

// Store returns the underlying store.
func (s *Service) Store() models.Store { return s.store }

// Close releases the underlying store.
func (s *Service) Close() error { return s.store.Close() }

// Init creates the schema if it has not been created by this Service yet.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := s.store.Init(ctx); err != nil {
		s.logger.Error("schema initialization failed", "error", err)
		return err
	}
	s.ready = true
	s.logger.Debug("schema ready")
	return nil
}

// ListRecipes returns userID's recipes, newest first.
func (s *Service) ListRecipes(ctx context.Context, userID string) ([]models.UserRecipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s.store.ListRecipes(ctx, userID)
}

// GetRecipe returns one of userID's recipes or [shared.ErrRecipeNotFound].
func (s *Service) GetRecipe(ctx context.Context, userID string, id int64) (*models.UserRecipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s.store.GetRecipe(ctx, userID, id)
}

// CreateRecipe stores a new recipe for userID and returns its id.
func (s *Service) CreateRecipe(ctx context.Context, userID string, fields models.RecipeFields) (int64, error) {
	if err := s.Init(ctx); err != nil {
		return 0, err
	}

	id, err := s.store.CreateRecipe(ctx, userID, fields)
	if err != nil {
		s.logger.Warn("failed to create recipe", "user", userID, "error", err)
		return 0, err
	}
	s.logger.Debug("recipe created", "user", userID, "id", id)
	return id, nil
}

// UpdateRecipe replaces the mutable fields of recipe id.
func (s *Service) UpdateRecipe(ctx context.Context, userID string, id int64, fields models.RecipeFields) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.store.UpdateRecipe(ctx, userID, id, fields); err != nil {
		s.logger.Warn("failed to update recipe", "user", userID, "id", id, "error", err)
		return err
	}
	return nil
}

// DeleteRecipe removes recipe id and its favorite entry.
func (s *Service) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, userID, id); err != nil {
		s.logger.Warn("failed to delete recipe", "user", userID, "id", id, "error", err)
		return err
	}
	return nil
}

// ListFavorites returns userID's favorites, newest first.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}

// IsFavorite reports whether userID has favorited mealID.
func (s *Service) IsFavorite(ctx context.Context, userID, mealID string) (bool, error) {
	if err := s.Init(ctx); err != nil {
		return false, err
	}
	return s.store.IsFavorite(ctx, userID, mealID)
}

// AddFavorite favorites meal for userID and reports success.
//
// An existing favorite for the same meal counts as success. Errors are logged, never returned.
func (s *Service) AddFavorite(ctx context.Context, userID string, meal models.FavoriteFields) bool {
	if err := s.Init(ctx); err != nil {
		return false
	}

	if err := s.store.AddFavorite(ctx, userID, meal); err != nil {
		s.logger.Warn("failed to add favorite", "user", userID, "meal", meal.MealID, "error", err)
		return false
	}
	return true
}

// FavoriteRecipe favorites one of userID's own recipes under its "user_<id>" meal id,
// snapshotting the recipe's details into the favorite.
func (s *Service) FavoriteRecipe(ctx context.Context, userID string, recipeID int64) bool {
	recipe, err := s.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		s.logger.Warn("failed to load recipe for favorite", "user", userID, "id", recipeID, "error", err)
		return false
	}
	return s.AddFavorite(ctx, userID, recipe.FavoriteFields())
}

// RemoveFavorite removes userID's favorite for mealID.
func (s *Service) RemoveFavorite(ctx context.Context, userID, mealID string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.store.RemoveFavorite(ctx, userID, mealID); err != nil {
		s.logger.Warn("failed to remove favorite", "user", userID, "meal", mealID, "error", err)
		return err
	}
	return nil
}

// DeleteAllUserData erases every recipe and favorite owned by userID.
func (s *Service) DeleteAllUserData(ctx context.Context, userID string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.store.DeleteAllUserData(ctx, userID); err != nil {
		s.logger.Error("failed to erase user data", "user", userID, "error", err)
		return fmt.Errorf("failed to erase user data: %w", err)
	}
	s.logger.Info("user data erased", "user", userID)
	return nil
}

// Export returns a snapshot of everything userID has stored.
func (s *Service) Export(ctx context.Context, userID string) (*models.UserData, error) {
	if err := models.RequireUserID(userID); err != nil {
		return nil, err
	}

	recipes, err := s.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserData{
		UserID:    userID,
		Backend:   s.Backend(),
		Recipes:   recipes,
		Favorites: favorites,
	}, nil
}
