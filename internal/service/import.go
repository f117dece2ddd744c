package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/sources"
	"github.com/pageza/recipebox/backend/internal/types"
)

// PageScraper extracts a recipe from a web page.
type PageScraper interface {
	Scrape(ctx context.Context, pageURL string) (*types.RecipeRequest, error)
}

// ImportService stores recipes read from recipe web pages.
type ImportService struct {
	scraper PageScraper
	recipes *RecipeService
}

func NewImportService(scraper PageScraper, recipes *RecipeService) *ImportService {
	return &ImportService{scraper: scraper, recipes: recipes}
}

// ImportURL scrapes a web page and saves the recipe on it. Video and social
// links are rejected with ErrUnsupportedSource. Ingredient lines that cannot
// be read are dropped rather than failing the import.
func (s *ImportService) ImportURL(ctx context.Context, rawURL string) (*model.Recipe, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := sources.ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	if kind := sources.DetectSourceType(rawURL); kind != model.SourceWeb {
		return nil, fmt.Errorf("%w: %s links are not web pages", ErrUnsupportedSource, kind)
	}

	req, err := s.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	lines := req.IngredientLines[:0]
	for _, line := range req.IngredientLines {
		if sources.ParseIngredient(line).Name == "" {
			logger.For("import").Warnf("Dropping unreadable ingredient %q from %s", line, rawURL)
			continue
		}
		lines = append(lines, line)
	}
	req.IngredientLines = lines

	return s.recipes.CreateRecipe(ctx, req)
}
