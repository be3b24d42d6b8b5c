package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "bodylog/internal/adapter/http"
	"bodylog/internal/adapter/memory"
	"bodylog/internal/adapter/postgres"
	"bodylog/internal/app"
	"bodylog/internal/clerk"
	"bodylog/internal/config"
	"bodylog/internal/domain"
	"bodylog/internal/logging"
)

func main() {
	cfg := config.Load()
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	var (
		accounts domain.AccountRepository
		weights  domain.WeightRepository
		tx       domain.Transactor
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "db open failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		accounts, weights, tx = db, db, db
	} else {
		log.Warn(ctx, "DATABASE_URL not set, using in-memory store")
		mem := memory.New()
		accounts, weights, tx = mem, mem, mem
	}

	verifier, err := clerk.NewVerifier(cfg.WebhookSecret, cfg.WebhookTolerance)
	if err != nil {
		log.Error(ctx, "bad webhook secret", "error", err)
		os.Exit(1)
	}

	var merger app.MetadataMerger
	if cfg.ClerkAPIKey != "" {
		merger = clerk.NewClient(cfg.ClerkBaseURL, cfg.ClerkAPIKey, log)
	} else {
		log.Warn(ctx, "CLERK_API_KEY not set, skipping metadata write-back")
	}

	accountSvc := app.NewAccountService(accounts, merger, tx)
	querySvc := app.NewWeightQueryService(weights, tx)
	weightSvc := app.NewWeightService(weights, querySvc, tx)

	var tokens adapthttp.TokenVerifier
	if cfg.OIDCIssuer != "" {
		tokens, err = adapthttp.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.Error(ctx, "oidc setup failed", "issuer", cfg.OIDCIssuer, "error", err)
			os.Exit(1)
		}
	} else {
		tokens = adapthttp.NewHS256Verifier(cfg.JWTSecret)
	}

	h := adapthttp.New(accountSvc, weightSvc, querySvc, verifier, tokens, log).Handler()
	log.Info(ctx, "listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
