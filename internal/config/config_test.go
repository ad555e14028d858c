package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "cheapram")
	t.Setenv("DB_NAME", "cheapram")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 60*time.Second, cfg.Feeds.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.Worker.RefreshInterval)
	assert.False(t, cfg.Feeds.HasRealFeeds())
}

func TestLoadMissingDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEED_FETCH_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_FETCH_TIMEOUT")
}

func TestFeedToggles(t *testing.T) {
	f := FeedsConfig{}
	assert.False(t, f.NeweggEnabled())
	assert.False(t, f.AmazonEnabled())
	assert.False(t, f.HasRealFeeds())

	f.NeweggFeedURL = "https://feeds.newegg.com/x.csv"
	assert.True(t, f.NeweggEnabled())
	assert.True(t, f.HasRealFeeds())

	f = FeedsConfig{AmazonPartnerTag: "cheapram-20", AmazonAccessKey: "AKIA"}
	// Amazon needs all three credentials to run, but tag plus access key is
	// enough to suppress the mock adapter.
	assert.False(t, f.AmazonEnabled())
	assert.True(t, f.HasRealFeeds())

	f.AmazonSecretKey = "secret"
	assert.True(t, f.AmazonEnabled())
}
