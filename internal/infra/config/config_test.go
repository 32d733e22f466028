package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "TELEGRAM_TOKEN", "DIGEST_CHAT_ID", "GEMINI_API_KEY", "GEMINI_MODEL",
		"INSIGHT_TIMEOUT", "LOG_LEVEL", "ENVIRONMENT", "CRON_SPEC_DAILY_AGENDA",
		"CRON_SPEC_MONTHLY_DIGEST", "SEED_SAMPLE_DATA", "EVIDENCE_MAX_BYTES", "CURRENCY_LOCALE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.TelegramEnabled())
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.InsightTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0 8 * * *", cfg.CronSpecDailyAgenda)
	assert.Equal(t, "0 9 1 * *", cfg.CronSpecMonthlyDigest)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, int64(5242880), cfg.EvidenceMaxBytes)
	assert.Equal(t, language.BrazilianPortuguese, cfg.CurrencyLocale)
}

func TestLoadTelegramNeedsChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	_, err := Load()
	assert.ErrorContains(t, err, "DIGEST_CHAT_ID")

	t.Setenv("DIGEST_CHAT_ID", "-100200300")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(-100200300), cfg.DigestChatID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"INSIGHT_TIMEOUT":    "soon",
		"SEED_SAMPLE_DATA":   "maybe",
		"EVIDENCE_MAX_BYTES": "0",
		"CURRENCY_LOCALE":    "not a locale!",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoadRejectsLocaleWithoutCurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv("CURRENCY_LOCALE", "und")
	_, err := Load()
	assert.ErrorContains(t, err, "CURRENCY_LOCALE")

	t.Setenv("CURRENCY_LOCALE", "en-US")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.CurrencyLocale.String())
}

func TestLoadNormalisesLogSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}
