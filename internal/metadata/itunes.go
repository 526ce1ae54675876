package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

// ITunes backs the music category via the public iTunes Search API; it
// returns albums, which map onto the music category's default subtype.
type ITunes struct {
	BaseURL string
	HTTP    *http.Client
}

type itunesResult struct {
	CollectionID   int64  `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	ArtworkURL100  string `json:"artworkUrl100"`
	ReleaseDate    string `json:"releaseDate"`
}

type itunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []itunesResult `json:"results"`
}

func (c *ITunes) search(ctx context.Context, _ category.Category, query string) ([]Result, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://itunes.apple.com"
	}
	u, err := url.Parse(base + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("term", query)
	q.Set("entity", "album")
	q.Set("limit", "20")
	u.RawQuery = q.Encode()

	var out itunesResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, Result{
			Title:       r.CollectionName,
			Subtitle:    r.ArtistName,
			ExternalID:  fmt.Sprintf("itunes:%d", r.CollectionID),
			ImageURL:    r.ArtworkURL100,
			ReleaseYear: yearOf(r.ReleaseDate),
		})
	}
	return results, nil
}
