package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/config"
	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/internal/router"
	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/store/gormstore"
	"github.com/district-ledger/backend/internal/store/mongostore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:generate swag init --parseInternal --output api

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.HumanLogs {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GinMode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Str("database", cfg.Database).Msg(err.Error())
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			log.Error().Msg(err.Error())
		}
	}()

	authenticator := auth.New(cfg.Assemblies, cfg.AdminAccounts, cfg.JWTSecret)
	if !authenticator.Enabled() {
		log.Warn().Msg("JWT_SECRET is not set, authentication is disabled")
	}

	g, err := generator(ctx, cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	narrator := narrative.New(g, cfg.NarrativeTimeout)
	log.Info().Str("source", narrator.Source()).Msg("Narrative reports")

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(api.Controller{
		Store:      s,
		Auth:       authenticator,
		Narrator:   narrator,
		Correction: aggregate.NewCorrection(cfg.OverlapRatio),
	}, cfg.EnablePprof, r.Group("/"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("backend startup complete")
		errs <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Msg(err.Error())
		}
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Msg(err.Error())
		}
	}
}

// openStore connects to the configured storage backend.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	if cfg.Database == config.DatabaseMongoDB {
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return mongostore.Open(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	}

	// Create data directory
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm); err != nil {
		return nil, err
	}
	return gormstore.Open(cfg.SQLitePath)
}

// generator returns the configured language model, nil if there is none.
// OpenAI is used when both are configured.
func generator(ctx context.Context, cfg config.Config) (narrative.Generator, error) {
	switch {
	case cfg.OpenAIKey != "":
		return narrative.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	case cfg.GeminiKey != "":
		g, err := narrative.NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, nil
}
