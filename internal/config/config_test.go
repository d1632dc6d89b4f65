package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SOLANA_TRACKER_API_URL", "")
	t.Setenv("SOLANA_TRACKER_API_KEY", "")
	t.Setenv("DEBUG_MODE", "")

	cfg := LoadConfig()

	assert.Equal(t, DefaultTrackerURL, cfg.Tracker.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Tracker.Timeout)
	assert.False(t, cfg.Tracker.Debug)
	assert.False(t, cfg.Tracker.IsConfigured())
	assert.Equal(t, DefaultWalletInstallURL, cfg.Wallet.InstallURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SOLANA_TRACKER_API_URL", "https://data.example.com/v1")
	t.Setenv("SOLANA_TRACKER_API_KEY", "secret")
	t.Setenv("SOLANA_TRACKER_TIMEOUT", "3s")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("LOG_OUTPUT_PATHS", "stdout, /tmp/tracker.log")

	cfg := LoadConfig()

	assert.Equal(t, "https://data.example.com/v1", cfg.Tracker.BaseURL)
	assert.Equal(t, "secret", cfg.Tracker.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Tracker.Timeout)
	assert.True(t, cfg.Tracker.Debug)
	assert.True(t, cfg.Tracker.IsConfigured())
	assert.Equal(t, []string{"stdout", "/tmp/tracker.log"}, cfg.Logging.OutputPaths)
}

func TestTrackerConfigIsConfigured(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    bool
	}{
		{"empty", "", false},
		{"default", DefaultTrackerURL, false},
		{"default with trailing slash", DefaultTrackerURL + "/", false},
		{"custom", "http://127.0.0.1:9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TrackerConfig{BaseURL: tt.baseURL, APIKey: "key"}
			assert.Equal(t, tt.want, cfg.IsConfigured())
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("SOLANA_TRACKER_API_URL", "")
	cfg := LoadConfig()
	cfg.Tracker.BaseURL = "not a url"
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
	assert.Contains(t, err.Error(), "Level")
}
