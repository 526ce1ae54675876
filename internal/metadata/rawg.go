package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

// RAWG backs the games category. The first listed platform becomes the
// result subtitle so the client can prefill the item's platform field.
type RAWG struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

type rawgPlatform struct {
	Platform struct {
		Name string `json:"name"`
	} `json:"platform"`
}

type rawgResult struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Released        string         `json:"released"`
	BackgroundImage string         `json:"background_image"`
	Platforms       []rawgPlatform `json:"platforms"`
}

type rawgResponse struct {
	Results []rawgResult `json:"results"`
}

func (c *RAWG) search(ctx context.Context, _ category.Category, query string) ([]Result, error) {
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
	q.Set("search", query)
	q.Set("page_size", "20")
	u.RawQuery = q.Encode()

	var out rawgResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		var names []string
		for _, p := range r.Platforms {
			names = append(names, p.Platform.Name)
		}
		results = append(results, Result{
			Title:       r.Name,
			Subtitle:    strings.Join(names, ", "),
			ExternalID:  fmt.Sprintf("rawg:%d", r.ID),
			ImageURL:    r.BackgroundImage,
			ReleaseYear: yearOf(r.Released),
		})
	}
	return results, nil
}
