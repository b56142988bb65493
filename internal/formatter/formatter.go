// package formatter provides functions to export a user's recipes and favorites to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

// Export formats accepted by [WriteExport].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ingredientSeparator joins ingredients into a single CSV cell.
const ingredientSeparator = "; "

// ExportToJSON converts a UserData snapshot to indented JSON.
func ExportToJSON(data *models.UserData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// RecipesToCSV converts recipes to CSV with columns: ID, Name, Category, Area, Ingredients, Image, Instructions
func RecipesToCSV(recipes []models.UserRecipe) ([]byte, error) {
	headers := []string{"ID", "Name", "Category", "Area", "Ingredients", "Image", "Instructions"}

	records := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		image := ""
		if r.ImageURI != nil {
			image = *r.ImageURI
		}
		records = append(records, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Category,
			r.Area,
			strings.Join(r.Ingredients, ingredientSeparator),
			image,
			r.Instructions,
		})
	}
	return writeCSV(headers, records)
}

// FavoritesToCSV converts favorites to CSV with columns: ID, MealID, Name, Thumbnail, Category, Area, Source
func FavoritesToCSV(favorites []models.Favorite) ([]byte, error) {
	headers := []string{"ID", "MealID", "Name", "Thumbnail", "Category", "Area", "Source"}

	records := make([][]string, 0, len(favorites))
	for _, f := range favorites {
		records = append(records, []string{
			strconv.FormatInt(f.ID, 10),
			f.MealID,
			f.MealName,
			f.MealThumbnail,
			f.Category,
			f.Area,
			source(f),
		})
	}
	return writeCSV(headers, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown renders a UserData snapshot as a Markdown cookbook.
func ExportToMarkdown(data *models.UserData) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Recipes for %s\n\n", data.UserID)
	fmt.Fprintf(&buf, "**Recipes**: %d\n", len(data.Recipes))
	fmt.Fprintf(&buf, "**Favorites**: %d\n\n", len(data.Favorites))

	for _, r := range data.Recipes {
		fmt.Fprintf(&buf, "## %s\n\n", r.Name)

		if r.ImageURI != nil && *r.ImageURI != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", r.Name, *r.ImageURI)
		}
		if meta := describe(r.Category, r.Area); meta != "" {
			fmt.Fprintf(&buf, "*%s*\n\n", meta)
		}

		if len(r.Ingredients) > 0 {
			buf.WriteString("### Ingredients\n\n")
			for _, ingredient := range r.Ingredients {
				fmt.Fprintf(&buf, "- %s\n", ingredient)
			}
			buf.WriteString("\n")
		}

		if r.Instructions != "" {
			buf.WriteString("### Instructions\n\n")
			fmt.Fprintf(&buf, "%s\n\n", r.Instructions)
		}
	}

	if len(data.Favorites) > 0 {
		buf.WriteString("## Favorites\n\n")
		for i, f := range data.Favorites {
			fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, displayName(f), source(f))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a UserData snapshot to plain text.
func ExportToText(data *models.UserData) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "User: %s\n", data.UserID)
	fmt.Fprintf(&buf, "Recipes: %d\n\n", len(data.Recipes))
	for i, r := range data.Recipes {
		fmt.Fprintf(&buf, "%d. %s", i+1, r.Name)
		if meta := describe(r.Category, r.Area); meta != "" {
			fmt.Fprintf(&buf, " (%s)", meta)
		}
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "\nFavorites: %d\n\n", len(data.Favorites))
	for i, f := range data.Favorites {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, displayName(f))
	}

	return buf.Bytes(), nil
}

// ExportResult lists the files written by [WriteExport].
type ExportResult struct {
	Format string
	Files  []string
}

// WriteExport writes data to outputDir in format, creating the directory when missing.
//
// Files are named after the user id:
//   - json: {user}.json
//   - csv: {user}_recipes.csv and {user}_favorites.csv
//   - markdown: {user}/README.md
//   - txt: {user}.txt
func WriteExport(data *models.UserData, format, outputDir string) (*ExportResult, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nothing to export", shared.ErrMissingArgument)
	}
	if format == "" {
		format = FormatJSON
	}
	if outputDir == "" {
		outputDir = "."
	}

	base := filepath.Join(outputDir, safeName(data.UserID))
	result := &ExportResult{Format: format, Files: []string{}}

	write := func(path string, render func() ([]byte, error)) error {
		content, err := render()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
		return nil
	}

	var err error
	switch format {
	case FormatJSON:
		err = write(base+".json", func() ([]byte, error) { return ExportToJSON(data) })
	case FormatCSV:
		if err = write(base+"_recipes.csv", func() ([]byte, error) { return RecipesToCSV(data.Recipes) }); err == nil {
			err = write(base+"_favorites.csv", func() ([]byte, error) { return FavoritesToCSV(data.Favorites) })
		}
	case FormatMarkdown:
		err = write(filepath.Join(base, "README.md"), func() ([]byte, error) { return ExportToMarkdown(data) })
	case FormatText:
		err = write(base+".txt", func() ([]byte, error) { return ExportToText(data) })
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func describe(category, area string) string {
	switch {
	case category != "" && area != "":
		return category + ", " + area
	case category != "":
		return category
	}
	return area
}

func displayName(f models.Favorite) string {
	if f.MealName != "" {
		return f.MealName
	}
	return f.MealID
}

func source(f models.Favorite) string {
	if f.IsUserRecipe() {
		return "recipe"
	}
	return "catalog"
}

// safeName replaces path separators so a user id can be used as a file name.
func safeName(userID string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(userID)
}
