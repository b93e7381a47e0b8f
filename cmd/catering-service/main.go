package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/admin"
	"github.com/vasiliy-maslov/catering-service/internal/catalog"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
	"github.com/vasiliy-maslov/catering-service/internal/config"
	"github.com/vasiliy-maslov/catering-service/internal/db"
	"github.com/vasiliy-maslov/catering-service/internal/handler"
	"github.com/vasiliy-maslov/catering-service/internal/notify"
	"github.com/vasiliy-maslov/catering-service/internal/square"
	"github.com/vasiliy-maslov/catering-service/internal/transport"
)

const pendingTimeout = 2 * time.Minute

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "catering-service").Logger()

	log.Info().Msg("Catering service starting...")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.App.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Debug().
		Str("square_environment", cfg.Square.Environment).
		Str("location_id", cfg.Square.LocationID).
		Bool("postgres", cfg.Postgres.Enabled()).
		Dur("dedup_window", cfg.DedupWindow).
		Msg("Configuration loaded")

	squareClient := square.NewClient(square.Options{
		AccessToken: cfg.Square.AccessToken,
		Production:  cfg.Square.Environment == config.SquareProduction,
		Version:     cfg.Square.Version,
		Timeout:     cfg.Square.Timeout,
	})

	notifier := notify.New(notify.Config{
		APIKey: cfg.Resend.APIKey,
		From:   cfg.Resend.From,
		To:     cfg.Resend.To,
	})

	menu, err := catalog.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	policy := catering.DedupPolicy{Window: cfg.DedupWindow, PendingTimeout: pendingTimeout}

	var (
		store  catering.SubmissionStore
		dbConn *db.Postgres
	)
	if cfg.Postgres.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		dbConn, err = db.New(connectCtx, cfg.Postgres)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		store = catering.NewRepository(dbConn.Pool, policy)
	} else {
		log.Warn().Msg("DB_HOST not set, submissions are deduplicated in memory only")
		store = catering.NewMemoryStore(policy)
	}

	cateringSvc := catering.NewService(squareClient, notifier, store, catering.Options{
		LocationID: cfg.Square.LocationID,
		Catalog:    menu,
	})
	adminSvc := admin.NewService(squareClient, cfg.Square.LocationID)

	router := transport.NewRouter(
		handler.NewCateringHandler(cateringSvc, menu),
		handler.NewAdminHandler(adminSvc),
	)
	server := transport.NewServer(cfg.App.Port, router)

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	if dbConn != nil {
		dbConn.Close()
	}

	log.Info().Msg("Catering service stopped gracefully")
}
