package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Provider
	GeminiAPIKey string // Not validated here; the provider reports a missing key on first use
	GeminiModel  string

	// Session
	SessionSecret   string // Used for signing cookies (min 32 chars)
	SessionRedisURL string // Optional shared session storage, e.g. "redis://localhost:6379/0"

	// CORS
	CORSOrigins string // Comma-separated allowed origins for the JSON API

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json

	// YAML overrides
	ConfigFile string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// LoadDotEnv reads a local .env file into the process environment, if present.
// Variables already set in the environment take precedence.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":8501"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8501"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionRedisURL: getEnv("SESSION_REDIS_URL", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ConfigFile:      getEnv("CONFIG_FILE", "config.yaml"),

		SiteTitle:   getEnv("SITE_TITLE", "Samvidhan Sathi 🤖"),
		SiteTagline: getEnv("SITE_TAGLINE", "Indian Constitution Chatbot"),
		SiteFooter:  getEnv("SITE_FOOTER", "Samvidhan Sathi - answers about the Constitution of India"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
