package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage. When RedisURL is set, sessions are kept in Redis so
	// they survive restarts; otherwise the in-memory store is used.
	RedisURL      string
	SessionSecret string // Used for signing cookies (min 32 chars)

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Metadata refresher job
	RefreshEnabled  bool
	RefreshInterval time.Duration
	RefreshMaxAge   time.Duration

	// SMTP (bookmark notifications; disabled when host is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "starttls", or "tls"

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "LinkDeck"
	SiteTagline string // env: SITE_TAGLINE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/linkdeck?sslmode=disable"),

		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RefreshEnabled:  getEnv("METADATA_REFRESH_ENABLED", "") != "",
		RefreshInterval: getEnvDuration("METADATA_REFRESH_INTERVAL", 1*time.Hour),
		RefreshMaxAge:   getEnvDuration("METADATA_REFRESH_MAX_AGE", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "LinkDeck"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		SiteTitle:   getEnv("SITE_TITLE", "LinkDeck"),
		SiteTagline: getEnv("SITE_TAGLINE", "Curate and share collections of links"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
