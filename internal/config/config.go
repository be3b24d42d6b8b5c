// Package config handles runtime configuration: development defaults
// overlaid by environment variables. The resulting Config is immutable for
// the lifetime of the process.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the bodylog server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseURL: PostgreSQL connection string; empty selects the
//     in-memory store (development only).
//   - JWTSecret: HMAC secret for verifying bearer tokens (HS256).
//   - OIDCIssuer / OIDCClientID: when the issuer is set, bearer tokens are
//     verified against the identity provider's JWKS instead of JWTSecret.
//   - WebhookSecret: Svix-style shared secret ("whsec_..." form).
//   - WebhookTolerance: max webhook timestamp skew; zero disables the check.
//   - ClerkBaseURL / ClerkAPIKey: outbound identity-provider API settings.
type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	OIDCIssuer       string
	OIDCClientID     string
	WebhookSecret    string
	WebhookTolerance time.Duration
	ClerkBaseURL     string
	ClerkAPIKey      string
}

// Load builds a Config from defaults overlaid by environment variables.
func Load() *Config {
	return &Config{
		Addr:             env("ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        env("JWT_SECRET", "dev-secret"),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		WebhookSecret:    env("CLERK_WEBHOOK_SECRET", "whsec_"),
		WebhookTolerance: envDuration("WEBHOOK_TOLERANCE", 0),
		ClerkBaseURL:     env("CLERK_BASE_URL", "https://api.clerk.com"),
		ClerkAPIKey:      os.Getenv("CLERK_API_KEY"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
