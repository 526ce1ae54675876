package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/handlers"
	"github.com/TareSY/MyBacklog-sub000/internal/logger"
	"github.com/TareSY/MyBacklog-sub000/internal/metadata"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	TMDBAPIKey  string `envconfig:"TMDB_API_KEY"`
	TMDBBaseURL string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	RAWGAPIKey  string `envconfig:"RAWG_API_KEY"`
	RAWGBaseURL string `envconfig:"RAWG_BASE_URL" default:"https://api.rawg.io/api"`
}

func mustLoadEnv() Config {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		logger.Log.WithError(err).Fatal("env error")
	}
	return c
}

func mustDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.WithError(err).Fatal("db connect error")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sqlDB, _ := db.DB()
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Log.WithError(err).Fatal("db ping error")
	}
	if err := store.Migrate(db); err != nil {
		logger.Log.WithError(err).Fatal("db migrate error")
	}
	return db
}

func main() {
	logger.Init("api")
	cfg := mustLoadEnv()
	db := mustDB(cfg.DatabaseURL)
	st := store.New(db)
	tokens := &auth.Tokens{Secret: []byte(cfg.JWTSecret)}
	meta := metadata.NewService(metadata.Config{
		TMDBAPIKey:  cfg.TMDBAPIKey,
		TMDBBaseURL: cfg.TMDBBaseURL,
		RAWGAPIKey:  cfg.RAWGAPIKey,
		RAWGBaseURL: cfg.RAWGBaseURL,
	})

	authHandler := handlers.NewAuthHandler(st, tokens)
	userHandler := handlers.NewUserHandler(st)
	listHandler := handlers.NewListHandler(st)
	itemHandler := handlers.NewItemHandler(st)
	friendHandler := handlers.NewFriendHandler(st)
	metaHandler := handlers.NewMetadataHandler(meta)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Route("/auth", authHandler.Routes)
			r.Get("/shared/{slug}", listHandler.SharedBySlug)
		})
		// List reads serve anonymous callers for public lists; mutations
		// check identity per handler.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Optional)
			r.Route("/lists", listHandler.Routes)
		})
		// Authed routes
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)
			r.Route("/me", userHandler.Routes)
			r.Route("/items", itemHandler.Routes)
			r.Route("/friends", friendHandler.Routes)
			r.Get("/recommendations", friendHandler.Recommendations)
			r.Get("/metadata/search", metaHandler.Search)
		})
	})

	addr := ":" + cfg.Port
	logger.Log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
