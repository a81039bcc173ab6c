// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads and validates application configuration
// from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me",
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// knownWeakPasswords are seed passwords rejected in production.
var knownWeakPasswords = []string{"change-me", "changeme", "password", "default"}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"EMBLEM_DB_PATH" envDefault:"./data/studio.db"`
	SessionSecret string `env:"EMBLEM_SESSION_SECRET,required"`
	ServerHost    string `env:"EMBLEM_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"EMBLEM_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"EMBLEM_ENV" envDefault:"development"`
	LogLevel      string `env:"EMBLEM_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"EMBLEM_UPLOADS_DIR" envDefault:"./uploads"`
	UploadMaxMB   int64  `env:"EMBLEM_UPLOAD_MAX_MB" envDefault:"10"`

	// Session cookie configuration
	SessionTTLDays int    `env:"EMBLEM_SESSION_TTL_DAYS" envDefault:"7"`
	CookieSecure   bool   `env:"EMBLEM_COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string `env:"EMBLEM_COOKIE_SAMESITE" envDefault:"lax"` // lax, strict, or none

	// Seed admin account
	AdminEmail    string `env:"EMBLEM_ADMIN_EMAIL" envDefault:"admin@emblem.studio"`
	AdminPassword string `env:"EMBLEM_ADMIN_PASSWORD" envDefault:"change-me"`

	// TrustedOrigins is a comma-separated list of origins (host:port) allowed
	// to make cross-origin requests against the admin API.
	TrustedOrigins []string `env:"EMBLEM_TRUSTED_ORIGINS" envSeparator:","`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UploadMaxBytes returns the maximum upload size in bytes.
func (c Config) UploadMaxBytes() int64 {
	mb := c.UploadMaxMB
	if mb < 1 {
		mb = 1
	}
	return mb * 1024 * 1024
}

// CookieIsSecure reports whether the session cookie carries the Secure flag.
// Production always gets Secure cookies.
func (c Config) CookieIsSecure() bool {
	return c.CookieSecure || c.IsProduction()
}

// CookieSameSiteMode maps the configured SameSite string to its http constant.
func (c Config) CookieSameSiteMode() http.SameSite {
	switch c.CookieSameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("EMBLEM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("EMBLEM_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("EMBLEM_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch cfg.CookieSameSite {
	case "lax", "strict", "none":
	default:
		return nil, fmt.Errorf("EMBLEM_COOKIE_SAMESITE must be lax, strict, or none, got %q", cfg.CookieSameSite)
	}

	// SameSite=None without Secure is rejected by browsers and defeats the
	// cookie's cross-site protections.
	if cfg.CookieSameSite == "none" && !cfg.CookieIsSecure() {
		return nil, fmt.Errorf("EMBLEM_COOKIE_SAMESITE=none requires EMBLEM_COOKIE_SECURE=true")
	}

	if cfg.SessionTTLDays < 1 {
		return nil, fmt.Errorf("EMBLEM_SESSION_TTL_DAYS must be at least 1, got %d", cfg.SessionTTLDays)
	}

	if cfg.IsProduction() {
		for _, weak := range knownWeakPasswords {
			if strings.EqualFold(cfg.AdminPassword, weak) {
				return nil, fmt.Errorf("EMBLEM_ADMIN_PASSWORD must be set to a non-default value in production")
			}
		}
	}

	for _, origin := range cfg.TrustedOrigins {
		if origin == "*" {
			return nil, fmt.Errorf("EMBLEM_TRUSTED_ORIGINS cannot include * for a credentialed API")
		}
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
