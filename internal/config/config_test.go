package config

import (
	"testing"
	"time"

	"bid-reconciler/internal/trackingerrors"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const validKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", validKey)

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.DatabaseURL)
	require.True(t, cfg.SchedulerEnabled)
	require.Equal(t, 10*time.Minute, cfg.CheckInterval)
	require.Equal(t, 50, cfg.CheckBatchSize)
	require.Equal(t, time.Hour, cfg.CheckLookback)
	require.Equal(t, 24*time.Hour, cfg.CheckLookahead)
	require.Equal(t, 10*time.Minute, cfg.CheckMinAge)
	require.Equal(t, 5*time.Second, cfg.CheckPauseMin)
	require.Equal(t, 10*time.Second, cfg.CheckPauseMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 20, cfg.RateLimitMax)
	require.Equal(t, 30*time.Second, cfg.SiteTimeout)
	require.Equal(t, "bids.won", cfg.NotifyChannel)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", validKey)
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("CHECK_INTERVAL", "2m")
	t.Setenv("CHECK_BATCH_SIZE", "5")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.False(t, cfg.SchedulerEnabled)
	require.Equal(t, 2*time.Minute, cfg.CheckInterval)
	require.Equal(t, 5, cfg.CheckBatchSize)
	require.Equal(t, 3, cfg.RateLimitMax)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing_key", env: map[string]string{"ENCRYPTION_KEY": ""}},
		{name: "short_key", env: map[string]string{"ENCRYPTION_KEY": "abcd"}},
		{name: "non_hex_key", env: map[string]string{"ENCRYPTION_KEY": "zz112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"}},
		{name: "zero_batch", env: map[string]string{"ENCRYPTION_KEY": validKey, "CHECK_BATCH_SIZE": "0"}},
		{name: "inverted_pause", env: map[string]string{"ENCRYPTION_KEY": validKey, "CHECK_PAUSE_MIN": "10s", "CHECK_PAUSE_MAX": "1s"}},
		{name: "zero_rate_limit", env: map[string]string{"ENCRYPTION_KEY": validKey, "RATE_LIMIT_MAX": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(viper.New())
			require.ErrorIs(t, err, trackingerrors.ErrConfiguration)
		})
	}
}
