package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/domain"
)

func TestBuildForecastKey_StableAcrossItemOrder(t *testing.T) {
	day := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	a := ForecastKey{Day: day, PredictionPeriod: 30, TargetItems: []string{"rice", "egg"}, IncludeSeasonality: true, AlertThreshold: 0.2}
	b := ForecastKey{Day: day.Add(3 * time.Hour), PredictionPeriod: 30, TargetItems: []string{" egg", "rice", "rice"}, IncludeSeasonality: true, AlertThreshold: 0.2}

	assert.Equal(t, buildForecastKey(a), buildForecastKey(b))
	assert.True(t, strings.HasPrefix(buildForecastKey(a), "forecast:run:2026-06-15:"))
}

func TestBuildForecastKey_DistinguishesRequests(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	base := ForecastKey{Day: day, PredictionPeriod: 30, IncludeSeasonality: true, AlertThreshold: 0.2}

	variants := []ForecastKey{
		{Day: day.AddDate(0, 0, 1), PredictionPeriod: 30, IncludeSeasonality: true, AlertThreshold: 0.2},
		{Day: day, PredictionPeriod: 60, IncludeSeasonality: true, AlertThreshold: 0.2},
		{Day: day, PredictionPeriod: 30, IncludeSeasonality: false, AlertThreshold: 0.2},
		{Day: day, PredictionPeriod: 30, IncludeSeasonality: true, AlertThreshold: 0.25},
		{Day: day, PredictionPeriod: 30, IncludeSeasonality: true, AlertThreshold: 0.2, TargetItems: []string{"rice"}},
	}

	seen := map[string]bool{buildForecastKey(base): true}
	for _, v := range variants {
		key := buildForecastKey(v)
		assert.False(t, seen[key], "key collision for %+v", v)
		seen[key] = true
	}
}

func TestNewForecastCache_DisabledIsNoop(t *testing.T) {
	c, err := NewForecastCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	key := ForecastKey{Day: time.Now(), PredictionPeriod: 30}
	require.NoError(t, c.Set(ctx, key, &domain.ForecastResponse{RunID: "r-1"}))

	resp, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resp)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestForecastRedisOptions(t *testing.T) {
	opts, err := forecastRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = forecastRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.internal:6379/1"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)

	_, err = forecastRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestForecastRedisOptions_Defaults(t *testing.T) {
	opts, err := forecastRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, 0, opts.DB)
}

func TestNewForecastCache_UnreachableRedis(t *testing.T) {
	_, err := NewForecastCache(config.CacheConfig{Enabled: true, RedisHost: "127.0.0.1", RedisPort: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
