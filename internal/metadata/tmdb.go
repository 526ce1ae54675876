package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

const tmdbImageBase = "https://image.tmdb.org/t/p/w342"

// TMDB serves both the movies and tv categories through the /search/movie
// and /search/tv endpoints.
type TMDB struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

type tmdbResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`          // movies
	Name         string `json:"name"`           // tv
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	ReleaseDate  string `json:"release_date"`   // movies
	FirstAirDate string `json:"first_air_date"` // tv
}

type tmdbSearchResponse struct {
	Page    int          `json:"page"`
	Results []tmdbResult `json:"results"`
}

func (c *TMDB) search(ctx context.Context, cat category.Category, query string) ([]Result, error) {
	endpoint := "/search/movie"
	if cat == category.TV {
		endpoint = "/search/tv"
	}
	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("query", query)
	u.RawQuery = q.Encode()

	var out tmdbSearchResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		title, date := r.Title, r.ReleaseDate
		if cat == category.TV {
			title, date = r.Name, r.FirstAirDate
		}
		img := ""
		if r.PosterPath != "" {
			img = tmdbImageBase + r.PosterPath
		}
		results = append(results, Result{
			Title:       title,
			ExternalID:  fmt.Sprintf("tmdb:%d", r.ID),
			ImageURL:    img,
			ReleaseYear: yearOf(date),
			Description: r.Overview,
		})
	}
	return results, nil
}
