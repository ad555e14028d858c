package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is assembled once at process start and passed by reference;
// nothing else reads the environment.
type Config struct {
	Port       string
	Env        string
	CronSecret string

	DB     DatabaseConfig
	Redis  RedisConfig
	Feeds  FeedsConfig
	Worker WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// FeedsConfig names which feed adapters are active and carries their
// credentials. An adapter runs iff its credentials are present.
type FeedsConfig struct {
	NeweggFeedURL     string
	NeweggAffiliateID string

	AmazonAccessKey  string
	AmazonSecretKey  string
	AmazonPartnerTag string
	AmazonRegion     string

	FetchTimeout time.Duration
}

// NeweggEnabled reports whether the Newegg feed adapter should run.
func (f *FeedsConfig) NeweggEnabled() bool {
	return f.NeweggFeedURL != ""
}

// AmazonEnabled reports whether the Amazon PA-API adapter should run.
func (f *FeedsConfig) AmazonEnabled() bool {
	return f.AmazonPartnerTag != "" && f.AmazonAccessKey != "" && f.AmazonSecretKey != ""
}

// HasRealFeeds reports whether any real affiliate feed is configured. The
// mock adapter runs only when this is false, so production never mixes demo
// rows into real data.
func (f *FeedsConfig) HasRealFeeds() bool {
	return f.NeweggFeedURL != "" || (f.AmazonPartnerTag != "" && f.AmazonAccessKey != "")
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	// RefreshInterval is the period of the in-process refresh worker.
	// Zero disables it; deployments can rely on the cron endpoint instead.
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it is loaded first. It returns a populated Config
// or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that
	// production environments relying solely on real environment variables
	// keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.CronSecret = getEnv("CRON_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Feeds
	cfg.Feeds = FeedsConfig{
		NeweggFeedURL:     getEnv("NEWEGG_FEED_URL", ""),
		NeweggAffiliateID: getEnv("NEWEGG_AFFILIATE_ID", ""),
		AmazonAccessKey:   getEnv("AMAZON_ACCESS_KEY", ""),
		AmazonSecretKey:   getEnv("AMAZON_SECRET_KEY", ""),
		AmazonPartnerTag:  getEnv("AMAZON_TAG", ""),
		AmazonRegion:      getEnv("AMAZON_REGION", "us-east-1"),
	}

	var err error
	if cfg.Feeds.FetchTimeout, err = parseDurationEnv("FEED_FETCH_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid FEED_FETCH_TIMEOUT: %w", err)
	}
	if cfg.Worker.RefreshInterval, err = parseDurationEnv("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a
// default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as
// time.Duration, falling back to the provided default when unset.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
