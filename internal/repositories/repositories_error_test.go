package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

func TestRecipeRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("MissingUserID", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if _, err := repo.Create(ctx, "", models.RecipeFields{Name: "Soup"}); !errors.Is(err, shared.ErrMissingUserID) {
				t.Fatalf("expected ErrMissingUserID, got %v", err)
			}
		})

		t.Run("ValidationError", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if _, err := repo.Create(ctx, "u1", models.RecipeFields{}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
			}
		})

		t.Run("ClosedDatabase", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewRecipeRepository(db)
			db.Close()

			if _, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup"}); err == nil {
				t.Fatal("expected error on closed database")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if _, err := repo.Get(ctx, "u1", 999); !errors.Is(err, shared.ErrRecipeNotFound) {
				t.Fatalf("expected ErrRecipeNotFound, got %v", err)
			}
		})

		t.Run("MissingUserID", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if _, err := repo.Get(ctx, "", 1); !errors.Is(err, shared.ErrMissingUserID) {
				t.Fatalf("expected ErrMissingUserID, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound Is Silent", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if err := repo.Update(ctx, "u1", 999, models.RecipeFields{Name: "Ghost"}); err != nil {
				t.Fatalf("expected no error for missing recipe, got %v", err)
			}

			recipes, _ := repo.List(ctx, "u1")
			if len(recipes) != 0 {
				t.Errorf("update of a missing id must not create rows, got %d", len(recipes))
			}
		})

		t.Run("MissingUserID", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if err := repo.Update(ctx, "", 1, models.RecipeFields{Name: "Soup"}); !errors.Is(err, shared.ErrMissingUserID) {
				t.Fatalf("expected ErrMissingUserID, got %v", err)
			}
		})

		t.Run("ValidationError", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))
			id, _ := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup"})

			if err := repo.Update(ctx, "u1", id, models.RecipeFields{Name: " "}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound Is Silent", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if err := repo.Delete(ctx, "u1", 999); err != nil {
				t.Fatalf("expected no error for missing recipe, got %v", err)
			}
		})

		t.Run("MissingUserID", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))

			if err := repo.Delete(ctx, "", 1); !errors.Is(err, shared.ErrMissingUserID) {
				t.Fatalf("expected ErrMissingUserID, got %v", err)
			}
		})

		t.Run("Other User Is No-op", func(t *testing.T) {
			repo := NewRecipeRepository(setupTestDB(t))
			id, _ := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup"})

			if err := repo.Delete(ctx, "u2", id); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := repo.Get(ctx, "u1", id); err != nil {
				t.Errorf("recipe should survive another user's delete: %v", err)
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		t.Run("CorruptIngredients", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewRecipeRepository(db)

			if _, err := db.Exec(`INSERT INTO user_recipes (user_id, name, ingredients) VALUES ('u1', 'Bad', '{not json')`); err != nil {
				t.Fatalf("failed to insert corrupt row: %v", err)
			}

			if _, err := repo.List(ctx, "u1"); !errors.Is(err, shared.ErrCorruptRecord) {
				t.Fatalf("expected ErrCorruptRecord, got %v", err)
			}
		})

		t.Run("LegacyEmptyIngredients", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewRecipeRepository(db)

			if _, err := db.Exec(`INSERT INTO user_recipes (user_id, name, ingredients) VALUES ('u1', 'Old', '')`); err != nil {
				t.Fatalf("failed to insert row: %v", err)
			}

			recipes, err := repo.List(ctx, "u1")
			if err != nil {
				t.Fatalf("failed to list recipes: %v", err)
			}
			if recipes[0].Ingredients == nil || len(recipes[0].Ingredients) != 0 {
				t.Errorf("expected empty ingredients, got %v", recipes[0].Ingredients)
			}
		})

		t.Run("ClosedDatabase", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewRecipeRepository(db)
			db.Close()

			if _, err := repo.List(ctx, "u1"); err == nil {
				t.Fatal("expected error on closed database")
			}
		})
	})
}

func TestFavoriteRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Add", func(t *testing.T) {
		t.Run("MissingUserID", func(t *testing.T) {
			repo := NewFavoriteRepository(setupTestDB(t))

			if err := repo.Add(ctx, "", models.FavoriteFields{MealID: "1"}); !errors.Is(err, shared.ErrMissingUserID) {
				t.Fatalf("expected ErrMissingUserID, got %v", err)
			}
		})

		t.Run("MissingMealID", func(t *testing.T) {
			repo := NewFavoriteRepository(setupTestDB(t))

			if err := repo.Add(ctx, "u1", models.FavoriteFields{MealName: "Corba"}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("ClosedDatabase", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewFavoriteRepository(db)
			db.Close()

			if err := repo.Add(ctx, "u1", models.FavoriteFields{MealID: "1"}); err == nil {
				t.Fatal("expected error on closed database")
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		t.Run("EmptyUser", func(t *testing.T) {
			repo := NewFavoriteRepository(setupTestDB(t))

			favs, err := repo.List(ctx, "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if favs == nil || len(favs) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", favs)
			}
		})

		t.Run("CorruptIngredients", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewFavoriteRepository(db)

			if _, err := db.Exec(`INSERT INTO favorites (user_id, meal_id, ingredients) VALUES ('u1', 'user_1', '[1,')`); err != nil {
				t.Fatalf("failed to insert corrupt row: %v", err)
			}

			if _, err := repo.List(ctx, "u1"); !errors.Is(err, shared.ErrCorruptRecord) {
				t.Fatalf("expected ErrCorruptRecord, got %v", err)
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("NoMatch Is Silent", func(t *testing.T) {
			repo := NewFavoriteRepository(setupTestDB(t))

			if err := repo.Remove(ctx, "u1", "missing"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("ClosedDatabase", func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewFavoriteRepository(db)
			db.Close()

			if err := repo.Remove(ctx, "u1", "1"); err == nil {
				t.Fatal("expected error on closed database")
			}
		})
	})
}

func TestDecodeIngredients(t *testing.T) {
	tc := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "empty", text: "", want: 0},
		{name: "null", text: "null", want: 0},
		{name: "empty array", text: "[]", want: 0},
		{name: "two lines", text: `["a","b"]`, want: 2},
		{name: "object", text: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeIngredients(tt.text)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrCorruptRecord) {
					t.Fatalf("expected ErrCorruptRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || len(got) != tt.want {
				t.Errorf("expected %d ingredients, got %v", tt.want, got)
			}
		})
	}
}
