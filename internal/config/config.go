package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// AppConfig gathers what the server needs to start.
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDriver  string
	DatabasePath    string
	DatabaseDSN     string
	SessionSecret   string
	GinMode         string
	LogLevel        string
	RedisURL        string
	CacheTTL        time.Duration
	AllowedOrigins  []string
	SiteName        string
	ContactEmail    string
	ContactLocation string
}

// IsDev reports whether the server runs in gin debug mode.
func (c AppConfig) IsDev() bool {
	return c.GinMode == "debug"
}

// Load reads the configuration from environment variables, falling back to
// safe defaults for anything missing.
func Load() AppConfig {
	port := env("PORT", "8080")

	listenAddr := env("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	cacheTTL := 5 * time.Minute
	if raw := env("CACHE_TTL", ""); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed >= 0 {
			cacheTTL = parsed
		}
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		DatabaseDriver:  strings.ToLower(env("DATABASE_DRIVER", "sqlite")),
		DatabasePath:    env("DATABASE_PATH", "folio.db"),
		DatabaseDSN:     env("DATABASE_DSN", ""),
		SessionSecret:   env("SESSION_SECRET", "folio-dev-secret"),
		GinMode:         env("GIN_MODE", "release"),
		LogLevel:        strings.ToLower(env("LOG_LEVEL", "info")),
		RedisURL:        env("REDIS_URL", ""),
		CacheTTL:        cacheTTL,
		AllowedOrigins:  splitList(env("ALLOWED_ORIGINS", "")),
		SiteName:        env("SITE_NAME", "Folio"),
		ContactEmail:    env("CONTACT_EMAIL", ""),
		ContactLocation: env("CONTACT_LOCATION", ""),
	}
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
