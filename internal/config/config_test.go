package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	require.True(t, cfg.Methods["GET"])
	require.False(t, cfg.Methods["POST"])
	require.Equal(t, 30*time.Second, cfg.TTL)
	require.Equal(t, "route_query", cfg.KeyStrategy)
	require.Equal(t, "cache", cfg.Prefix)
	require.Equal(t, 1<<20, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	require.False(t, cfg.Enabled)
	require.True(t, cfg.Methods["GET"])
	require.True(t, cfg.Methods["HEAD"])
	require.Equal(t, 2*time.Minute, cfg.TTL)
}

func TestLoadRateLimitConfigNormalizesMinimums(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "bogus")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 1, cfg.Capacity)
	require.Equal(t, 1, cfg.RefillTokens)
	require.Equal(t, time.Second, cfg.RefillInterval)
	// TTL is raised so bucket state outlives several refill intervals.
	require.Equal(t, 5*time.Second, cfg.TTL)
}
