package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Sheets store configuration
	Sheets SheetsConfig

	// Auth configuration
	Auth AuthConfig

	// RSS feed configuration
	Feed FeedConfig

	// Submission rate limit configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SheetsConfig holds spreadsheet store settings. CredentialsJSON is the
// service-account key as provided by the hosting environment; when it or a
// spreadsheet id is empty the store reports unavailable and read paths
// degrade to empty results.
type SheetsConfig struct {
	BaseURL               string
	CredentialsJSON       string
	ContentSpreadsheetID  string
	ResearchSpreadsheetID string
	RequestTimeout        time.Duration
}

// AuthConfig holds admin gating settings. Session/OAuth wiring lives in the
// hosting layer; the API itself only checks the bearer token.
type AuthConfig struct {
	AdminToken  string
	AdminEmails []string
}

// FeedConfig holds RSS output settings
type FeedConfig struct {
	SiteURL         string
	Title           string
	Description     string
	ExternalFeedURL string
	ItemLimit       int
}

// RateLimitConfig holds the public submission quota
type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Sheets: SheetsConfig{
			BaseURL:               getEnv("SHEETS_BASE_URL", "https://sheets.googleapis.com/v4/spreadsheets"),
			CredentialsJSON:       getEnv("GOOGLE_CREDENTIALS", ""),
			ContentSpreadsheetID:  getEnv("CONTENT_SPREADSHEET_ID", ""),
			ResearchSpreadsheetID: getEnv("RESEARCHERS_SPREADSHEET_ID", ""),
			RequestTimeout:        getDurationEnv("SHEETS_REQUEST_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			AdminToken:  getEnv("ADMIN_API_TOKEN", ""),
			AdminEmails: getListEnv("ADMIN_EMAILS"),
		},
		Feed: FeedConfig{
			SiteURL:         getEnv("SITE_URL", "https://techpolicywire.com"),
			Title:           getEnv("FEED_TITLE", "Tech Policy Wire"),
			Description:     getEnv("FEED_DESCRIPTION", "Curated technology policy news, ideas, reports, and research"),
			ExternalFeedURL: getEnv("EXTERNAL_FEED_URL", ""),
			ItemLimit:       getIntEnv("FEED_ITEM_LIMIT", 50),
		},
		RateLimit: RateLimitConfig{
			Window: getDurationEnv("SUBMISSION_RATE_WINDOW", 60*time.Second),
			Max:    getIntEnv("SUBMISSION_RATE_MAX", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// StoreConfigured reports whether the sheets store has enough configuration
// to attempt remote calls.
func (c *Config) StoreConfigured() bool {
	return c.Sheets.CredentialsJSON != "" && c.Sheets.ContentSpreadsheetID != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
