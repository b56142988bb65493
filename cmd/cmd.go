// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User ID that owns the data",
		Required: true,
	}
}

func idFlag(usage string) cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Usage:    usage,
		Required: true,
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// recipeFlags are the editable recipe fields shared by add and update.
func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "Recipe name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "Category, e.g. Dessert",
		},
		&cli.StringFlag{
			Name:  "area",
			Usage: "Cuisine area, e.g. Turkish",
		},
		&cli.StringFlag{
			Name:  "instructions",
			Usage: "Preparation steps",
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "Image URI",
		},
		&cli.StringSliceFlag{
			Name:    "ingredient",
			Aliases: []string{"i"},
			Usage:   "Ingredient (repeatable)",
		},
		&cli.StringFlag{
			Name:  "ingredients",
			Usage: "Ingredients, one per line",
		},
		&cli.StringFlag{
			Name:  "ingredients-file",
			Usage: "Path to a file with one ingredient per line",
		},
	}
}

// setupCommand handles database and configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Select the storage backend and create the schema",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent SQLite migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write a default configuration file, or update storage settings in it",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "backend", Usage: "Storage backend: auto, sqlite or flat"},
					&cli.StringFlag{Name: "engine", Usage: "Flat store engine: file, redis or memory"},
					&cli.StringFlag{Name: "db-path", Usage: "SQLite database path"},
					&cli.StringFlag{Name: "flat-dir", Usage: "Flat store directory"},
					&cli.StringFlag{Name: "redis-url", Usage: "Redis URL for the redis engine"},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// recipesCommand handles personal recipe CRUD.
func recipesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recipes",
		Aliases: []string{"recipe", "r"},
		Usage:   "Manage personal recipes",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List a user's recipes, newest first",
				Flags:  append([]cli.Flag{userFlag()}, outputFlags()...),
				Action: r.RecipesList,
			},
			{
				Name:   "show",
				Usage:  "Show one recipe",
				Flags:  append([]cli.Flag{userFlag(), idFlag("Recipe ID")}, outputFlags()...),
				Action: r.RecipesShow,
			},
			{
				Name:   "add",
				Usage:  "Create a recipe",
				Flags:  append([]cli.Flag{userFlag(), &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}}, recipeFlags()...),
				Action: r.RecipesAdd,
			},
			{
				Name:   "update",
				Usage:  "Replace every field of a recipe",
				Flags:  append([]cli.Flag{userFlag(), idFlag("Recipe ID")}, recipeFlags()...),
				Action: r.RecipesUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete a recipe and its favorite entry",
				Flags:  []cli.Flag{userFlag(), idFlag("Recipe ID")},
				Action: r.RecipesDelete,
			},
		},
	}
}

// favoritesCommand handles favorites of catalog meals and personal recipes.
func favoritesCommand(r *Runner) *cli.Command {
	mealArg := []cli.Argument{&cli.StringArg{Name: "meal-id"}}

	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"favorite", "fav"},
		Usage:   "Manage favorites",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List a user's favorites, newest first",
				Flags:  append([]cli.Flag{userFlag()}, outputFlags()...),
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Favorite a catalog meal",
				Arguments: mealArg,
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Meal name"},
					&cli.StringFlag{Name: "thumbnail", Usage: "Meal thumbnail URL"},
					&cli.StringFlag{Name: "category", Usage: "Meal category"},
					&cli.StringFlag{Name: "area", Usage: "Meal cuisine area"},
					&cli.StringFlag{Name: "instructions", Usage: "Meal preparation steps"},
					&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient (repeatable)"},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:   "add-recipe",
				Usage:  "Favorite one of the user's own recipes",
				Flags:  []cli.Flag{userFlag(), idFlag("Recipe ID")},
				Action: r.FavoritesAddRecipe,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a favorite",
				Arguments: mealArg,
				Flags:     []cli.Flag{userFlag()},
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "check",
				Usage:     "Report whether a meal is favorited",
				Arguments: mealArg,
				Flags:     []cli.Flag{userFlag(), &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action:    r.FavoritesCheck,
			},
		},
	}
}

// accountCommand handles whole-account data operations.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Account data operations",
		Commands: []*cli.Command{
			{
				Name:  "erase",
				Usage: "Delete every recipe and favorite of a user",
				Flags: []cli.Flag{
					userFlag(),
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm the erase"},
				},
				Action: r.AccountErase,
			},
			{
				Name:  "export",
				Usage: "Export a user's recipes and favorites to files",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: r.AccountExport,
			},
		},
	}
}
