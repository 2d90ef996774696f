package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error
	Version  string // reported by /api/health

	// Server
	ServerAddr string
	BaseURL    string
	ViewsDir   string
	StaticDir  string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Database (empty disables analysis history)
	DatabaseURL      string
	HistoryRetention time.Duration
	PruneInterval    time.Duration

	// Redis for shared rate limit counters (empty keeps them in memory)
	RedisURL string

	// Document retrieval
	RetrieverBaseURL   string
	RetrieverTimeout   time.Duration
	RetrieverUserAgent string

	// Rate limiting on /analyze
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Stopword and scoring overrides
	ResourcesFile string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Word Bubble"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "1.0.0"),

		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),
		ViewsDir:   getEnv("VIEWS_DIR", "./views"),
		StaticDir:  getEnv("STATIC_DIR", "./static"),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		HistoryRetention: getEnvAsDuration("HISTORY_RETENTION", 30*24*time.Hour),
		PruneInterval:    getEnvAsDuration("PRUNE_INTERVAL", time.Hour),

		RedisURL: getEnv("REDIS_URL", ""),

		RetrieverBaseURL:   getEnv("RETRIEVER_BASE_URL", "https://en.wikipedia.org/wiki/"),
		RetrieverTimeout:   getEnvAsDuration("RETRIEVER_TIMEOUT", 10*time.Second),
		RetrieverUserAgent: getEnv("RETRIEVER_USER_AGENT", "wordbubble/1.0 (+https://github.com/wordbubble)"),

		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),

		ResourcesFile: getEnv("RESOURCES_FILE", "resources.yaml"),

		SiteTitle:   getEnv("SITE_TITLE", "Word Bubble"),
		SiteTagline: getEnv("SITE_TAGLINE", "See what a topic is really about"),
		SiteFooter:  getEnv("SITE_FOOTER", "Word Bubble - keyword importance at a glance"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, fallback)
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, fallback)
		return fallback
	}
	return value
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HistoryEnabled reports whether analyses are persisted.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// RateLimitStorageEnabled reports whether limiter counters live in Redis.
func (c *Config) RateLimitStorageEnabled() bool {
	return c.RedisURL != ""
}
