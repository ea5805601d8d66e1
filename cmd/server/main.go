package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/edublog/edublog/blog/application"
	"github.com/edublog/edublog/blog/persistence"
	"github.com/edublog/edublog/internal/config"
	"github.com/edublog/edublog/internal/middleware"
	"github.com/edublog/edublog/internal/rest"
	"github.com/edublog/edublog/shared/broadcast"
	"github.com/edublog/edublog/shared/db/sqlite"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Log.Level).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	// Initialize dependencies
	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.Database.Path})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	cache := persistence.NewCacheStore(database.DB())
	remote := persistence.NewRemoteBlobStore(persistence.RemoteConfig{
		BaseURL: cfg.Remote.BaseURL,
		BinID:   cfg.Remote.BinID,
		APIKey:  cfg.Remote.APIKey,
		Timeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
	})
	events := broadcast.New()

	verifier := &application.SingleUserVerifier{
		Username:     cfg.Auth.Username,
		PasswordHash: []byte(cfg.Auth.PasswordHash),
	}
	authService := application.NewAuthService(
		cache,
		verifier,
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
	)

	repo := application.NewPostRepository(cache, remote, events, authService)
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to gracefully close post repository")
		}
	}()

	if err := repo.Refresh(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed initial reconciliation")
	}

	contactService := application.NewContactService(cache)
	renderer := application.NewMarkdownRenderer()

	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(middleware.HandlePanics()))
	rest.NewAPI(router, repo, authService, contactService, renderer)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
