// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/resort-booking/internal/config"
	"github.com/codr1/resort-booking/internal/drafts"
	"github.com/codr1/resort-booking/internal/email"
	"github.com/codr1/resort-booking/internal/ratelimit"
	"github.com/codr1/resort-booking/internal/resortapi"
	"github.com/codr1/resort-booking/internal/scheduler"
)

const (
	shutdownTimeout = 30 * time.Second
	// Only used in development when APP_SECRET_KEY is unset.
	devCookieSecret = "resort-booking-dev-secret"
)

type deps struct {
	api     resortapi.Service
	store   *drafts.Store
	cookies *drafts.Cookies
	sender  email.EmailSender
	limiter *ratelimit.Limiter
}

func setupLogger(environment string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment, cfg.Features.EnableDebug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer d.limiter.Close()

	jobs, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterDraftPurgeJob(jobs, d.store, cfg.Drafts.CleanupCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register draft purge job")
	}
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg, d)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("api", cfg.API.BaseURL).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := jobs.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func buildDeps(ctx context.Context, cfg *config.Config) (deps, error) {
	client, err := resortapi.New(cfg.API.BaseURL, cfg.API.Timeout, nil)
	if err != nil {
		return deps{}, fmt.Errorf("create resort api client: %w", err)
	}

	secret := cfg.App.SecretKey
	if secret == "" {
		log.Warn().Msg("APP_SECRET_KEY not set; using development cookie secret")
		secret = devCookieSecret
	}

	var sender email.EmailSender = email.LogSender{}
	if cfg.Email.Enabled() {
		ses, err := email.NewSESClient(ctx, cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			return deps{}, fmt.Errorf("create ses client: %w", err)
		}
		sender = ses
	} else {
		log.Warn().Msg("SES not configured; summary emails will only be logged")
	}

	return deps{
		api:     client,
		store:   drafts.NewStore(cfg.Drafts.TTL, nil),
		cookies: drafts.NewCookies(secret, !cfg.IsDevelopment(), cfg.Drafts.TTL),
		sender:  sender,
		limiter: ratelimit.New(&ratelimit.Config{
			Cooldown:               cfg.RateLimit.SummaryCooldown,
			MaxPerRecipientPerHour: cfg.RateLimit.SummaryMaxPerRecipientHour,
			MaxIPPerHour:           cfg.RateLimit.SummaryMaxIPPerHour,
		}),
	}, nil
}
