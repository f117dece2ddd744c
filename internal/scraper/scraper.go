// Package scraper imports recipes from web pages that publish schema.org
// Recipe data as JSON-LD. Pages without it yield a title and image only.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ErrFetchFailed wraps every failure to download a page.
var ErrFetchFailed = errors.New("failed to fetch recipe page")

const (
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxPageBytes = 5 << 20
	untitled     = "Untitled Recipe"
)

// Scraper downloads recipe pages.
type Scraper struct {
	client *http.Client
}

// New creates a Scraper. A nil client gets a 15 second timeout.
func New(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Scraper{client: client}
}

// Scrape fetches pageURL and extracts the recipe it describes. The main
// image is the first candidate that answers as an image.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*types.RecipeRequest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	page, err := Extract(pageURL, io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}
	page.Recipe.MainImageURL = s.BestImageURL(ctx, page.Images)

	log := logger.For("scraper")
	if page.Structured {
		log.Infof("Extracted recipe %q from %s", page.Recipe.Name, pageURL)
	} else {
		log.Warnf("No structured recipe data on %s, kept title and image only", pageURL)
	}
	return page.Recipe, nil
}

// BestImageURL returns the first candidate that responds to HEAD with an
// image content type, or "" when none does.
func (s *Scraper) BestImageURL(ctx context.Context, candidates []string) string {
	for _, c := range candidates {
		if s.validImage(ctx, c) {
			return c
		}
	}
	return ""
}

func (s *Scraper) validImage(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK && strings.Contains(resp.Header.Get("Content-Type"), "image")
}

// Page is what Extract found on a page.
type Page struct {
	Recipe *types.RecipeRequest
	// Images are main image candidates, best first.
	Images []string
	// Structured is false when the page had no Recipe JSON-LD.
	Structured bool
}

// Extract reads a recipe from an HTML document.
func Extract(pageURL string, body io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var node map[string]interface{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node = findRecipe(s.Text())
		return node == nil
	})

	ogImage := strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	if node == nil {
		return fallback(pageURL, doc, ogImage), nil
	}

	page := &Page{Recipe: fromJSONLD(pageURL, node), Structured: true}
	page.Images = imageURLs(node["image"])
	if ogImage != "" {
		page.Images = append(page.Images, ogImage)
	}
	return page, nil
}

func fallback(pageURL string, doc *goquery.Document, ogImage string) *Page {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		title = untitled
	}
	page := &Page{Recipe: &types.RecipeRequest{Name: title, SourceURL: pageURL}}
	if ogImage != "" {
		page.Images = []string{ogImage}
	}
	return page
}
