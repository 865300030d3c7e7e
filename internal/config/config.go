// Package config reads the tracker settings from the environment (and .env) via viper
package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"bid-reconciler/internal/trackingerrors"

	"github.com/spf13/viper"
)

// Config holds every runtime setting
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	EncryptionKey string

	SchedulerEnabled bool
	CheckInterval    time.Duration
	CheckBatchSize   int
	CheckLookback    time.Duration
	CheckLookahead   time.Duration
	CheckMinAge      time.Duration
	CheckPauseMin    time.Duration
	CheckPauseMax    time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int
	SiteTimeout     time.Duration
	SnapshotDir     string

	RabbitMQURL   string
	RedisURL      string
	NotifyChannel string
}

// SetDefaults registers the default for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("CHECK_INTERVAL", "10m")
	v.SetDefault("CHECK_BATCH_SIZE", 50)
	v.SetDefault("CHECK_LOOKBACK", "1h")
	v.SetDefault("CHECK_LOOKAHEAD", "24h")
	v.SetDefault("CHECK_MIN_AGE", "10m")
	v.SetDefault("CHECK_PAUSE_MIN", "5s")
	v.SetDefault("CHECK_PAUSE_MAX", "10s")
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
	v.SetDefault("RATE_LIMIT_MAX", 20)
	v.SetDefault("SITE_TIMEOUT", "30s")
	v.SetDefault("SNAPSHOT_DIR", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("NOTIFY_CHANNEL", "bids.won")
}

// Load reads the configuration from v, falling back to environment variables and
// defaults, and validates it
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	SetDefaults(v)

	cfg := Config{
		Port:             v.GetString("PORT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		EncryptionKey:    strings.TrimSpace(v.GetString("ENCRYPTION_KEY")),
		SchedulerEnabled: v.GetBool("SCHEDULER_ENABLED"),
		CheckInterval:    v.GetDuration("CHECK_INTERVAL"),
		CheckBatchSize:   v.GetInt("CHECK_BATCH_SIZE"),
		CheckLookback:    v.GetDuration("CHECK_LOOKBACK"),
		CheckLookahead:   v.GetDuration("CHECK_LOOKAHEAD"),
		CheckMinAge:      v.GetDuration("CHECK_MIN_AGE"),
		CheckPauseMin:    v.GetDuration("CHECK_PAUSE_MIN"),
		CheckPauseMax:    v.GetDuration("CHECK_PAUSE_MAX"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX"),
		SiteTimeout:      v.GetDuration("SITE_TIMEOUT"),
		SnapshotDir:      v.GetString("SNAPSHOT_DIR"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RedisURL:         v.GetString("REDIS_URL"),
		NotifyChannel:    v.GetString("NOTIFY_CHANNEL"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the tracker cannot run without
func (c Config) Validate() error {
	if len(c.EncryptionKey) != 64 {
		return fmt.Errorf("config: ENCRYPTION_KEY must be 64 hex characters: %w", trackingerrors.ErrConfiguration)
	}
	if _, err := hex.DecodeString(c.EncryptionKey); err != nil {
		return fmt.Errorf("config: ENCRYPTION_KEY must be hexadecimal: %w", trackingerrors.ErrConfiguration)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("config: CHECK_INTERVAL must be positive: %w", trackingerrors.ErrConfiguration)
	}
	if c.CheckBatchSize <= 0 {
		return fmt.Errorf("config: CHECK_BATCH_SIZE must be positive: %w", trackingerrors.ErrConfiguration)
	}
	if c.CheckPauseMin < 0 || c.CheckPauseMax < c.CheckPauseMin {
		return fmt.Errorf("config: CHECK_PAUSE_MIN/CHECK_PAUSE_MAX must form a range: %w", trackingerrors.ErrConfiguration)
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_WINDOW and RATE_LIMIT_MAX must be positive: %w", trackingerrors.ErrConfiguration)
	}
	return nil
}
