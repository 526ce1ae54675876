package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

// OpenLibrary backs the books category. No API key required.
type OpenLibrary struct {
	BaseURL string
	HTTP    *http.Client
}

type openLibraryDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int64    `json:"cover_i"`
}

type openLibraryResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

func (c *OpenLibrary) search(ctx context.Context, _ category.Category, query string) ([]Result, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://openlibrary.org"
	}
	u, err := url.Parse(base + "/search.json")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("limit", "20")
	u.RawQuery = q.Encode()

	var out openLibraryResponse
	if err := getJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(out.Docs))
	for _, d := range out.Docs {
		author := ""
		if len(d.AuthorName) > 0 {
			author = d.AuthorName[0]
		}
		img := ""
		if d.CoverID != 0 {
			img = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", d.CoverID)
		}
		results = append(results, Result{
			Title:       d.Title,
			Subtitle:    author,
			ExternalID:  "openlibrary:" + d.Key,
			ImageURL:    img,
			ReleaseYear: d.FirstPublishYear,
		})
	}
	return results, nil
}
