package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Paging helpers used by the seed tool; the serving path only searches.

// PopularMovies pages TMDB's popular movie listing.
func (c *TMDB) PopularMovies(ctx context.Context, page int) ([]Result, error) {
	u, err := url.Parse(c.BaseURL + "/movie/popular")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_key", c.APIKey)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	var out tmdbSearchResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		img := ""
		if r.PosterPath != "" {
			img = tmdbImageBase + r.PosterPath
		}
		results = append(results, Result{
			Title:       r.Title,
			ExternalID:  fmt.Sprintf("tmdb:%d", r.ID),
			ImageURL:    img,
			ReleaseYear: yearOf(r.ReleaseDate),
			Description: r.Overview,
		})
	}
	return results, nil
}

// TopGames pages RAWG's games listing ordered by rating.
func (c *RAWG) TopGames(ctx context.Context, page int) ([]Result, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://api.rawg.io/api"
	}
	u, err := url.Parse(base + "/games")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", c.APIKey)
	q.Set("ordering", "-rating")
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	q.Set("page_size", "20")
	u.RawQuery = q.Encode()

	var out rawgResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		platform := ""
		if len(r.Platforms) > 0 {
			platform = r.Platforms[0].Platform.Name
		}
		results = append(results, Result{
			Title:       r.Name,
			Subtitle:    platform,
			ExternalID:  fmt.Sprintf("rawg:%d", r.ID),
			ImageURL:    r.BackgroundImage,
			ReleaseYear: yearOf(r.Released),
		})
	}
	return results, nil
}
