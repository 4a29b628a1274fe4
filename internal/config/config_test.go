package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.ForecastTTLSeconds)
	assert.Equal(t, 30, cfg.Forecast.DefaultPeriodDays)
	assert.Equal(t, 0.20, cfg.Forecast.AlertThreshold)
	assert.Equal(t, "linear", cfg.Forecast.TrendModel)
	assert.Equal(t, 0.05, cfg.Forecast.TrendGrowthRate)
	assert.Equal(t, 3, cfg.Forecast.TrendMinBuckets)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FORECAST_TREND_MODEL", "fixed")
	t.Setenv("FORECAST_ALERT_THRESHOLD", "0.35")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("DATABASE_URL", "postgres://planner@db/mealchain")

	cfg := load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "fixed", cfg.Forecast.TrendModel)
	assert.Equal(t, 0.35, cfg.Forecast.AlertThreshold)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "postgres://planner@db/mealchain", cfg.Database.URL)
}
