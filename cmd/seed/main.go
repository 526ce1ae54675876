// Command seed fills a demo account with popular movies from TMDB and
// top-rated games from RAWG. It is an operational tool: long sequential
// loops, a shared rate limiter to stay polite with the third parties, and
// skip-on-error per row.
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/logger"
	"github.com/TareSY/MyBacklog-sub000/internal/metadata"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
)

type Config struct {
	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	TMDBAPIKey   string `envconfig:"TMDB_API_KEY" required:"true"`
	TMDBBaseURL  string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	RAWGAPIKey   string `envconfig:"RAWG_API_KEY" required:"true"`
	RAWGBaseURL  string `envconfig:"RAWG_BASE_URL" default:"https://api.rawg.io/api"`
	SeedEmail    string `envconfig:"SEED_EMAIL" default:"demo@backlog.local"`
	SeedPassword string `envconfig:"SEED_PASSWORD" default:"demo-password"`
	Pages        int    `envconfig:"SEED_PAGES" default:"3"`
}

func main() {
	logger.Init("seed")
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Log.WithError(err).Fatal("env error")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.WithError(err).Fatal("db connect error")
	}
	if err := store.Migrate(db); err != nil {
		logger.Log.WithError(err).Fatal("db migrate error")
	}
	st := store.New(db)
	ctx := context.Background()

	user, err := ensureDemoUser(ctx, st, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("demo user")
	}

	movieList, err := ensureList(ctx, st, user.ID, "Popular Movies")
	if err != nil {
		logger.Log.WithError(err).Fatal("movie list")
	}
	gameList, err := ensureList(ctx, st, user.ID, "Top Games")
	if err != nil {
		logger.Log.WithError(err).Fatal("game list")
	}

	httpc := &http.Client{Timeout: 10 * time.Second}
	tmdb := &metadata.TMDB{APIKey: cfg.TMDBAPIKey, BaseURL: cfg.TMDBBaseURL, HTTP: httpc}
	rawg := &metadata.RAWG{APIKey: cfg.RAWGAPIKey, BaseURL: cfg.RAWGBaseURL, HTTP: httpc}

	// ~4 requests/sec keeps both providers comfortable.
	limiter := rate.NewLimiter(rate.Every(250*time.Millisecond), 1)

	seeded := 0
	for page := 1; page <= cfg.Pages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		results, err := tmdb.PopularMovies(ctx, page)
		if err != nil {
			logger.Log.WithError(err).WithField("page", page).Warn("tmdb page failed, skipping")
			continue
		}
		seeded += insertAll(ctx, st, user.ID, movieList.ID, category.Movies, results)
	}
	for page := 1; page <= cfg.Pages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		results, err := rawg.TopGames(ctx, page)
		if err != nil {
			logger.Log.WithError(err).WithField("page", page).Warn("rawg page failed, skipping")
			continue
		}
		seeded += insertAll(ctx, st, user.ID, gameList.ID, category.Games, results)
	}

	logger.Log.WithField("items", seeded).Info("seed complete")
}

func ensureDemoUser(ctx context.Context, st *store.Store, cfg Config) (*models.User, error) {
	if u, err := st.GetUserByEmail(ctx, cfg.SeedEmail); err == nil {
		return u, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(cfg.SeedPassword)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        cfg.SeedEmail,
		Username:     "demo",
		DisplayName:  "Demo User",
		PasswordHash: hash,
	}
	if err := st.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func ensureList(ctx context.Context, st *store.Store, ownerID, name string) (*models.List, error) {
	existing, err := st.ListsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Name == name {
			return &existing[i], nil
		}
	}
	l := &models.List{OwnerID: ownerID, Name: name, IsPublic: true}
	if err := st.CreateList(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func insertAll(ctx context.Context, st *store.Store, ownerID, listID string, cat category.Category, results []metadata.Result) int {
	n := 0
	for _, r := range results {
		item := &models.Item{
			CategoryID:  int(cat),
			Title:       r.Title,
			Subtitle:    r.Subtitle,
			ExternalID:  r.ExternalID,
			ImageURL:    r.ImageURL,
			ReleaseYear: r.ReleaseYear,
			Description: r.Description,
		}
		if cat == category.Games {
			item.Platform = r.Subtitle
			item.Subtitle = ""
		}
		if _, err := st.CreateItem(ctx, ownerID, item, []string{listID}); err != nil {
			if errors.Is(err, store.ErrDuplicateTitle) {
				continue
			}
			logger.Log.WithError(err).WithField("title", r.Title).Warn("insert failed, skipping")
			continue
		}
		n++
	}
	return n
}
