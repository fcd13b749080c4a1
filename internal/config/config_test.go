package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_DSN":     "postgres://localhost/appointments",
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 8, cfg.BusinessStart)
	assert.Equal(t, 18, cfg.BusinessEnd)
	assert.Equal(t, time.Hour, cfg.SlotLength)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, "usd", cfg.StripeCurrency)
	assert.EqualValues(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, 10, cfg.AuthRateBurst)
	assert.False(t, cfg.PaymentsEnabled())
	assert.False(t, cfg.BotEnabled())
	assert.Empty(t, cfg.TelegramAdminIDs)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"ENV":                "production",
		"DB_DSN":             "dsn",
		"JWT_SECRET":         "secret",
		"JWT_EXPIRATION":     "2h",
		"TIMEZONE":           "UTC",
		"SLOT_MINUTES":       "30",
		"TELEGRAM_TOKEN":     "tok",
		"TELEGRAM_ADMIN_IDS": "1, 2,,3",
		"STRIPE_SECRET_KEY":  "sk_test",
		"STRIPE_CURRENCY":    "EUR",
		"ADMIN_EMAIL":        "admin@example.com",
		"ADMIN_PASSWORD":     "pw",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 30*time.Minute, cfg.SlotLength)
	assert.Equal(t, []int64{1, 2, 3}, cfg.TelegramAdminIDs)
	assert.Equal(t, "eur", cfg.StripeCurrency)
	assert.True(t, cfg.PaymentsEnabled())
	assert.True(t, cfg.BotEnabled())
}

func TestFromEnv_Errors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"DB_DSN": "dsn", "JWT_SECRET": "secret"}
	}

	tests := []struct {
		key, value, want string
	}{
		{"DB_DSN", "", "DB_DSN"},
		{"JWT_SECRET", "", "JWT_SECRET"},
		{"JWT_EXPIRATION", "tomorrow", "JWT_EXPIRATION"},
		{"TIMEZONE", "Mars/Olympus", "TIMEZONE"},
		{"SLOT_MINUTES", "abc", "SLOT_MINUTES"},
		{"SLOT_MINUTES", "0", "SLOT_MINUTES"},
		{"BUSINESS_HOURS_END", "7", "BUSINESS_HOURS"},
		{"TELEGRAM_ADMIN_IDS", "1,x", "TELEGRAM_ADMIN_IDS"},
		{"AUTH_RATE_LIMIT", "-1", "AUTH_RATE_LIMIT"},
		{"ADMIN_EMAIL", "a@b.c", "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			m := base()
			m[tt.key] = tt.value
			_, err := FromEnv(env(m))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
