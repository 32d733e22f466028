package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	HTTPAddr              string
	TelegramToken         string // empty disables the bot and the scheduler
	DigestChatID          int64
	GeminiAPIKey          string // empty means fallback insights only
	GeminiModel           string
	InsightTimeout        time.Duration
	LogLevel              string
	Environment           string
	CronSpecDailyAgenda   string
	CronSpecMonthlyDigest string
	SeedSampleData        bool
	EvidenceMaxBytes      int64
	CurrencyLocale        language.Tag
}

// TelegramEnabled reports whether the bot and the digest scheduler should run.
func (c *AppConfig) TelegramEnabled() bool { return c.TelegramToken != "" }

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken != "" {
		chatIDStr := os.Getenv("DIGEST_CHAT_ID")
		if chatIDStr == "" {
			return nil, fmt.Errorf("DIGEST_CHAT_ID is not set")
		}
		cfg.DigestChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DIGEST_CHAT_ID: %w", err)
		}
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getenv("GEMINI_MODEL", "gemini-3-flash-preview")

	cfg.InsightTimeout, err = time.ParseDuration(getenv("INSIGHT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INSIGHT_TIMEOUT: %w", err)
	}

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT", "development"))

	cfg.CronSpecDailyAgenda = getenv("CRON_SPEC_DAILY_AGENDA", "0 8 * * *")     // Default: 8:00 AM daily
	cfg.CronSpecMonthlyDigest = getenv("CRON_SPEC_MONTHLY_DIGEST", "0 9 1 * *") // Default: 9:00 AM on the 1st

	cfg.SeedSampleData, err = strconv.ParseBool(getenv("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}

	cfg.EvidenceMaxBytes, err = strconv.ParseInt(getenv("EVIDENCE_MAX_BYTES", "5242880"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid EVIDENCE_MAX_BYTES: %w", err)
	}
	if cfg.EvidenceMaxBytes <= 0 {
		return nil, fmt.Errorf("invalid EVIDENCE_MAX_BYTES: must be positive")
	}

	cfg.CurrencyLocale, err = language.Parse(getenv("CURRENCY_LOCALE", "pt-BR"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_LOCALE: %w", err)
	}
	if _, conf := currency.FromTag(cfg.CurrencyLocale); conf == language.No {
		return nil, fmt.Errorf("invalid CURRENCY_LOCALE: no currency for %q, include a region such as pt-BR", cfg.CurrencyLocale)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
