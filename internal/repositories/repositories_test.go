package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestRecipeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		id, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup"})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		if id <= 0 {
			t.Errorf("expected positive id, got %d", id)
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		fields := models.RecipeFields{
			Name:         "Corba",
			Category:     "Side",
			Area:         "Turkish",
			Instructions: "Boil lentils.",
			ImageURI:     strPtr("file:///corba.jpg"),
			Ingredients:  []string{"1 cup lentils", "1 onion"},
		}

		id, err := repo.Create(ctx, "u1", fields)
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		recipe, err := repo.Get(ctx, "u1", id)
		if err != nil {
			t.Fatalf("failed to get recipe: %v", err)
		}

		if recipe.ID != id || recipe.UserID != "u1" {
			t.Errorf("expected id %d owner u1, got %d %s", id, recipe.ID, recipe.UserID)
		}
		if recipe.Name != "Corba" || recipe.Area != "Turkish" || recipe.Instructions != "Boil lentils." {
			t.Errorf("unexpected fields: %+v", recipe)
		}
		if recipe.ImageURI == nil || *recipe.ImageURI != "file:///corba.jpg" {
			t.Errorf("expected image uri, got %v", recipe.ImageURI)
		}
		if len(recipe.Ingredients) != 2 || recipe.Ingredients[1] != "1 onion" {
			t.Errorf("expected ingredients round trip, got %v", recipe.Ingredients)
		}

		if _, err := repo.Get(ctx, "u2", id); !errors.Is(err, shared.ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound for another user, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		for _, name := range []string{"First", "Second", "Third"} {
			if _, err := repo.Create(ctx, "u1", models.RecipeFields{Name: name}); err != nil {
				t.Fatalf("failed to create recipe: %v", err)
			}
		}
		if _, err := repo.Create(ctx, "u2", models.RecipeFields{Name: "Other"}); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		recipes, err := repo.List(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list recipes: %v", err)
		}

		if len(recipes) != 3 {
			t.Fatalf("expected 3 recipes, got %d", len(recipes))
		}

		if recipes[0].Name != "Third" || recipes[2].Name != "First" {
			t.Errorf("expected newest first, got %s..%s", recipes[0].Name, recipes[2].Name)
		}

		for _, r := range recipes {
			if r.Ingredients == nil {
				t.Errorf("recipe %d: ingredients should be an empty slice, not nil", r.ID)
			}
			if r.ImageURI != nil {
				t.Errorf("recipe %d: expected nil image uri", r.ID)
			}
		}

		empty, err := repo.List(ctx, "")
		if err != nil {
			t.Fatalf("failed to list recipes for empty user: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", empty)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		id, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup", ImageURI: strPtr("a.png"), Ingredients: []string{"water"}})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}
		other, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "Bread"})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		update := models.RecipeFields{Name: "Tomato Soup", Category: "Starter", Ingredients: []string{"tomato", "water"}}
		if err := repo.Update(ctx, "u1", id, update); err != nil {
			t.Fatalf("failed to update recipe: %v", err)
		}

		recipe, err := repo.Get(ctx, "u1", id)
		if err != nil {
			t.Fatalf("failed to get recipe: %v", err)
		}
		if recipe.Name != "Tomato Soup" || recipe.Category != "Starter" {
			t.Errorf("expected updated fields, got %+v", recipe)
		}
		if recipe.ImageURI != nil {
			t.Errorf("full replace should clear image uri, got %v", *recipe.ImageURI)
		}
		if len(recipe.Ingredients) != 2 {
			t.Errorf("expected 2 ingredients, got %v", recipe.Ingredients)
		}

		untouched, err := repo.Get(ctx, "u1", other)
		if err != nil {
			t.Fatalf("failed to get other recipe: %v", err)
		}
		if untouched.Name != "Bread" {
			t.Errorf("other recipe should be unchanged, got %s", untouched.Name)
		}
	})

	t.Run("Update Other User Is No-op", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		id, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "Soup"})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		if err := repo.Update(ctx, "u2", id, models.RecipeFields{Name: "Hijacked"}); err != nil {
			t.Fatalf("update by another user should not error: %v", err)
		}

		recipe, err := repo.Get(ctx, "u1", id)
		if err != nil {
			t.Fatalf("failed to get recipe: %v", err)
		}
		if recipe.Name != "Soup" {
			t.Errorf("expected Soup, got %s", recipe.Name)
		}
	})

	t.Run("Delete Cascades To Favorite", func(t *testing.T) {
		db := setupTestDB(t)
		recipes := NewRecipeRepository(db)
		favorites := NewFavoriteRepository(db)

		id, err := recipes.Create(ctx, "u1", models.RecipeFields{Name: "Soup"})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		recipe, _ := recipes.Get(ctx, "u1", id)
		if err := favorites.Add(ctx, "u1", recipe.FavoriteFields()); err != nil {
			t.Fatalf("failed to favorite recipe: %v", err)
		}
		if err := favorites.Add(ctx, "u1", models.FavoriteFields{MealID: "52977", MealName: "Corba"}); err != nil {
			t.Fatalf("failed to add catalog favorite: %v", err)
		}

		if err := recipes.Delete(ctx, "u1", id); err != nil {
			t.Fatalf("failed to delete recipe: %v", err)
		}

		if _, err := recipes.Get(ctx, "u1", id); !errors.Is(err, shared.ErrRecipeNotFound) {
			t.Errorf("expected recipe to be gone, got %v", err)
		}

		favs, err := favorites.List(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(favs) != 1 || favs[0].MealID != "52977" {
			t.Errorf("expected only the catalog favorite to remain, got %+v", favs)
		}
	})

	t.Run("Ids Are Not Reused", func(t *testing.T) {
		repo := NewRecipeRepository(setupTestDB(t))

		first, _ := repo.Create(ctx, "u1", models.RecipeFields{Name: "A"})
		if err := repo.Delete(ctx, "u1", first); err != nil {
			t.Fatalf("failed to delete recipe: %v", err)
		}

		second, err := repo.Create(ctx, "u1", models.RecipeFields{Name: "B"})
		if err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}
		if second <= first {
			t.Errorf("expected id greater than %d, got %d", first, second)
		}
	})
}

func TestFavoriteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Add Is Idempotent", func(t *testing.T) {
		repo := NewFavoriteRepository(setupTestDB(t))
		meal := models.FavoriteFields{MealID: "52977", MealName: "Corba", MealThumbnail: "https://img/corba.jpg"}

		for range 2 {
			if err := repo.Add(ctx, "u1", meal); err != nil {
				t.Fatalf("failed to add favorite: %v", err)
			}
		}

		favs, err := repo.List(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(favs) != 1 {
			t.Fatalf("expected 1 favorite, got %d", len(favs))
		}
		if favs[0].MealName != "Corba" || favs[0].MealThumbnail != "https://img/corba.jpg" {
			t.Errorf("unexpected favorite: %+v", favs[0])
		}
		if favs[0].Ingredients != nil {
			t.Errorf("catalog favorite should have no ingredients, got %v", favs[0].Ingredients)
		}
	})

	t.Run("Same Meal Different Users", func(t *testing.T) {
		repo := NewFavoriteRepository(setupTestDB(t))
		meal := models.FavoriteFields{MealID: "52977"}

		if err := repo.Add(ctx, "u1", meal); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := repo.Add(ctx, "u2", meal); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}

		for _, u := range []string{"u1", "u2"} {
			ok, err := repo.Exists(ctx, u, "52977")
			if err != nil {
				t.Fatalf("failed to check favorite: %v", err)
			}
			if !ok {
				t.Errorf("expected %s to have the favorite", u)
			}
		}
	})

	t.Run("Denormalized Fields", func(t *testing.T) {
		repo := NewFavoriteRepository(setupTestDB(t))
		meal := models.FavoriteFields{
			MealID:       "user_5",
			MealName:     "Soup",
			Category:     "Starter",
			Area:         "Home",
			Instructions: "Stir.",
			Ingredients:  []string{"water", "salt"},
		}

		if err := repo.Add(ctx, "u1", meal); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}

		favs, err := repo.List(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		got := favs[0]
		if got.Category != "Starter" || got.Area != "Home" || got.Instructions != "Stir." {
			t.Errorf("unexpected detail fields: %+v", got)
		}
		if len(got.Ingredients) != 2 || got.Ingredients[0] != "water" {
			t.Errorf("expected ingredients round trip, got %v", got.Ingredients)
		}
		if !got.IsUserRecipe() {
			t.Error("expected user recipe favorite")
		}
	})

	t.Run("List Order", func(t *testing.T) {
		repo := NewFavoriteRepository(setupTestDB(t))

		for _, id := range []string{"1", "2", "3"} {
			if err := repo.Add(ctx, "u1", models.FavoriteFields{MealID: id}); err != nil {
				t.Fatalf("failed to add favorite: %v", err)
			}
		}

		favs, err := repo.List(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(favs) != 3 || favs[0].MealID != "3" || favs[2].MealID != "1" {
			t.Errorf("expected newest first, got %+v", favs)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		repo := NewFavoriteRepository(setupTestDB(t))

		if err := repo.Add(ctx, "u1", models.FavoriteFields{MealID: "52977"}); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}

		if err := repo.Remove(ctx, "u1", "52977"); err != nil {
			t.Fatalf("failed to remove favorite: %v", err)
		}
		if err := repo.Remove(ctx, "u1", "52977"); err != nil {
			t.Fatalf("second remove should be a no-op: %v", err)
		}

		ok, err := repo.Exists(ctx, "u1", "52977")
		if err != nil {
			t.Fatalf("failed to check favorite: %v", err)
		}
		if ok {
			t.Error("favorite should be removed")
		}
	})
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Backend", func(t *testing.T) {
		if got := NewSQLStore(setupTestDB(t)).Backend(); got != models.BackendStructured {
			t.Errorf("expected structured backend, got %s", got)
		}
	})

	t.Run("Init Is Idempotent", func(t *testing.T) {
		store := NewSQLStore(setupTestDB(t))

		if _, err := store.CreateRecipe(ctx, "u1", models.RecipeFields{Name: "Soup"}); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		for range 3 {
			if err := store.Init(ctx); err != nil {
				t.Fatalf("init should be repeatable: %v", err)
			}
		}

		recipes, err := store.ListRecipes(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list recipes: %v", err)
		}
		if len(recipes) != 1 {
			t.Errorf("init must not lose data, got %d recipes", len(recipes))
		}
	})

	t.Run("DeleteAllUserData", func(t *testing.T) {
		store := NewSQLStore(setupTestDB(t))

		for _, u := range []string{"u1", "u2"} {
			if _, err := store.CreateRecipe(ctx, u, models.RecipeFields{Name: "Soup"}); err != nil {
				t.Fatalf("failed to create recipe: %v", err)
			}
			if err := store.AddFavorite(ctx, u, models.FavoriteFields{MealID: "52977"}); err != nil {
				t.Fatalf("failed to add favorite: %v", err)
			}
		}

		if err := store.DeleteAllUserData(ctx, "u1"); err != nil {
			t.Fatalf("failed to erase user data: %v", err)
		}

		recipes, _ := store.ListRecipes(ctx, "u1")
		favs, _ := store.ListFavorites(ctx, "u1")
		if len(recipes) != 0 || len(favs) != 0 {
			t.Errorf("expected u1 to be empty, got %d recipes %d favorites", len(recipes), len(favs))
		}

		recipes, _ = store.ListRecipes(ctx, "u2")
		favs, _ = store.ListFavorites(ctx, "u2")
		if len(recipes) != 1 || len(favs) != 1 {
			t.Errorf("u2 should be untouched, got %d recipes %d favorites", len(recipes), len(favs))
		}

		if err := store.DeleteAllUserData(ctx, "nobody"); err != nil {
			t.Errorf("erasing a user without data should succeed: %v", err)
		}
	})
}
