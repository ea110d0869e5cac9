package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "SESSION_STORE", "REQUEST_TIMEOUT", "TIMEZONE",
		"DASHBOARD_TOP_CATEGORIES", "DASHBOARD_RECENT", "PAYMENT_PRIORITY_DAYS", "PLAID_CLIENT_ID", "PLAID_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.Dashboard.TopCategories)
	assert.Equal(t, 3, cfg.Dashboard.PriorityDays)
	assert.False(t, cfg.Plaid.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("SESSION_STORE", "Memory")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("PLAID_CLIENT_ID", " client ")
	t.Setenv("PLAID_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, "client", cfg.Plaid.ClientID)
	assert.True(t, cfg.Plaid.Enabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SESSION_STORE":            "redis",
		"REQUEST_TIMEOUT":          "soon",
		"DASHBOARD_TOP_CATEGORIES": "many",
		"TIMEZONE":                 "Mars/Olympus",
		"PAYMENT_PRIORITY_DAYS":    "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("SESSION_STORE", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadAllowsZeroPriorityDays(t *testing.T) {
	t.Setenv("PAYMENT_PRIORITY_DAYS", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Dashboard.PriorityDays)
}
