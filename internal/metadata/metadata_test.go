package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TareSY/MyBacklog-sub000/internal/cache"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
)

func TestTMDBSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		assert.Equal(t, "dune", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[{"id":438631,"title":"Dune","overview":"desert planet","poster_path":"/p.jpg","release_date":"2021-09-15"}]}`))
	}))
	defer srv.Close()

	c := &TMDB{APIKey: "k", BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := c.search(context.Background(), category.Movies, "dune")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Dune", res[0].Title)
	assert.Equal(t, "tmdb:438631", res[0].ExternalID)
	assert.Equal(t, 2021, res[0].ReleaseYear)
	assert.Equal(t, tmdbImageBase+"/p.jpg", res[0].ImageURL)
}

func TestTMDBSearchTVUsesNameAndFirstAirDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/tv", r.URL.Path)
		w.Write([]byte(`{"page":1,"results":[{"id":1399,"name":"Game of Thrones","first_air_date":"2011-04-17"}]}`))
	}))
	defer srv.Close()

	c := &TMDB{APIKey: "k", BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := c.search(context.Background(), category.TV, "thrones")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Game of Thrones", res[0].Title)
	assert.Equal(t, 2011, res[0].ReleaseYear)
}

func TestOpenLibrarySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		w.Write([]byte(`{"docs":[{"key":"/works/OL893415W","title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,"cover_i":11481354}]}`))
	}))
	defer srv.Close()

	c := &OpenLibrary{BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := c.search(context.Background(), category.Books, "dune")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Frank Herbert", res[0].Subtitle)
	assert.Equal(t, "openlibrary:/works/OL893415W", res[0].ExternalID)
	assert.Equal(t, 1965, res[0].ReleaseYear)
}

func TestRAWGSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		w.Write([]byte(`{"results":[{"id":274755,"name":"Hades","released":"2020-09-17","platforms":[{"platform":{"name":"PC"}},{"platform":{"name":"Switch"}}]}]}`))
	}))
	defer srv.Close()

	c := &RAWG{APIKey: "k", BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := c.search(context.Background(), category.Games, "hades")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "PC, Switch", res[0].Subtitle)
	assert.Equal(t, "rawg:274755", res[0].ExternalID)
}

func TestITunesSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "album", r.URL.Query().Get("entity"))
		w.Write([]byte(`{"resultCount":1,"results":[{"collectionId":1097861387,"collectionName":"OK Computer","artistName":"Radiohead","releaseDate":"1997-05-28T07:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := &ITunes{BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := c.search(context.Background(), category.Music, "ok computer")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Radiohead", res[0].Subtitle)
	assert.Equal(t, 1997, res[0].ReleaseYear)
}

func TestServiceCachesSearches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Dune"}]}`))
	}))
	defer srv.Close()

	s := &Service{
		tmdb:  &TMDB{APIKey: "k", BaseURL: srv.URL, HTTP: srv.Client()},
		cache: cache.NewTTL[string, []Result](time.Minute),
	}
	for i := 0; i < 3; i++ {
		res, err := s.Search(context.Background(), category.Movies, "dune")
		require.NoError(t, err)
		require.Len(t, res, 1)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestServiceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := &Service{
		tmdb:  &TMDB{APIKey: "k", BaseURL: srv.URL, HTTP: srv.Client()},
		cache: cache.NewTTL[string, []Result](time.Minute),
	}
	_, err := s.Search(context.Background(), category.Movies, "dune")
	assert.Error(t, err)
}
