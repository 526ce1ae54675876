// Package metadata looks titles up against the third-party catalogs and
// normalizes the answers into one shape the item-creation flow can use as
// optional enrichment fields. Provenance is not verified; results are
// plain suggestions the client may copy into an item.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/TareSY/MyBacklog-sub000/internal/cache"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

// Result is the normalized projection of one external catalog entry.
type Result struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	ExternalID  string `json:"external_id"`
	ImageURL    string `json:"image_url,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
	Description string `json:"description,omitempty"`
}

type provider interface {
	search(ctx context.Context, c category.Category, query string) ([]Result, error)
}

// Service dispatches a search to the provider for the requested category:
// TMDB for movies and tv, Open Library for books, the iTunes Search API
// for music, RAWG for games.
type Service struct {
	tmdb        *TMDB
	openLibrary *OpenLibrary
	itunes      *ITunes
	rawg        *RAWG

	cache *cache.TTLCache[string, []Result]
}

type Config struct {
	TMDBAPIKey  string
	TMDBBaseURL string
	RAWGAPIKey  string
	RAWGBaseURL string
}

func NewService(cfg Config) *Service {
	httpc := &http.Client{Timeout: 10 * time.Second}
	return &Service{
		tmdb:        &TMDB{APIKey: cfg.TMDBAPIKey, BaseURL: cfg.TMDBBaseURL, HTTP: httpc},
		openLibrary: &OpenLibrary{HTTP: httpc},
		itunes:      &ITunes{HTTP: httpc},
		rawg:        &RAWG{APIKey: cfg.RAWGAPIKey, BaseURL: cfg.RAWGBaseURL, HTTP: httpc},
		cache:       cache.NewTTL[string, []Result](60 * time.Second),
	}
}

func (s *Service) Search(ctx context.Context, c category.Category, query string) ([]Result, error) {
	key := c.Slug() + "\x00" + query
	if hit, ok := s.cache.Get(key); ok {
		return hit, nil
	}
	var p provider
	switch c {
	case category.Movies, category.TV:
		p = s.tmdb
	case category.Books:
		p = s.openLibrary
	case category.Music:
		p = s.itunes
	case category.Games:
		p = s.rawg
	default:
		return nil, fmt.Errorf("no provider for %s", c)
	}
	res, err := p.search(ctx, c, query)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, res)
	return res, nil
}

// getJSON performs a GET with context and decodes the body; any non-200
// answer is surfaced as an upstream error.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	var y int
	if _, err := fmt.Sscanf(date[:4], "%d", &y); err != nil {
		return 0
	}
	return y
}
