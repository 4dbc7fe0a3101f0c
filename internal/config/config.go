package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mixelka/codefetch/internal/timestamp"
)

// Config application configuration
type Config struct {
	// Mail provider
	MailAPIURL string `env:"MAIL_API_URL"` // e.g., https://mail.example.com
	FetchMode  string `env:"FETCH_MODE" envDefault:"api"` // "api" or "imap"

	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/codefetch.db"`

	// Polling
	Timezone      string        `env:"TIMEZONE" envDefault:"UTC"` // UTC, UTC+HH:MM or UTC-HH:MM
	MaxAttempts   int           `env:"POLL_MAX_ATTEMPTS" envDefault:"5"`
	RetryDelay    time.Duration `env:"POLL_RETRY_DELAY" envDefault:"10s"`
	RecencyWindow time.Duration `env:"POLL_RECENCY_WINDOW" envDefault:"3m"`
	FetchSize     int           `env:"POLL_FETCH_SIZE" envDefault:"10"`

	// IMAP fallback
	IMAPDialTimeout time.Duration `env:"IMAP_DIAL_TIMEOUT" envDefault:"30s"`

	// Telegram notification (optional)
	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// TelegramEnabled returns true if code notification over Telegram is configured
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.FetchMode != "api" && cfg.FetchMode != "imap" {
		return nil, fmt.Errorf("FETCH_MODE must be \"api\" or \"imap\", got %q", cfg.FetchMode)
	}
	if _, err := timestamp.ParseOffset(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.MaxAttempts <= 0 || cfg.FetchSize <= 0 {
		return nil, fmt.Errorf("POLL_MAX_ATTEMPTS and POLL_FETCH_SIZE must be positive")
	}
	if cfg.RetryDelay <= 0 || cfg.RecencyWindow <= 0 {
		return nil, fmt.Errorf("POLL_RETRY_DELAY and POLL_RECENCY_WINDOW must be positive")
	}

	return cfg, nil
}
