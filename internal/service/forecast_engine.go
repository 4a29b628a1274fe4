package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/forecast"
	"github.com/andresuchdata/mealchain/internal/storage"
)

// NewForecastEngine builds the engine described by cfg. Seasonal curves
// start from the defaults, then the profile file and the bucket object are
// layered on in that order. store may be nil when no object key is set.
func NewForecastEngine(ctx context.Context, cfg config.ForecastConfig, store storage.ObjectStorage) (*forecast.Engine, error) {
	trend, err := forecast.NewTrendModel(cfg.TrendModel, cfg.TrendGrowthRate, cfg.TrendMinBuckets)
	if err != nil {
		return nil, err
	}

	profile := forecast.DefaultSeasonalProfile()

	if cfg.SeasonalProfilePath != "" {
		fromFile, err := forecast.ReadSeasonalProfileFile(cfg.SeasonalProfilePath)
		if err != nil {
			return nil, err
		}
		profile = profile.Merge(fromFile)
		log.Info().Str("path", cfg.SeasonalProfilePath).Int("categories", len(fromFile)).Msg("forecast: seasonal profile loaded from file")
	}

	if cfg.SeasonalProfileKey != "" {
		if store == nil {
			return nil, fmt.Errorf("seasonal profile key %s is set but object storage is disabled", cfg.SeasonalProfileKey)
		}
		data, err := store.GetObject(ctx, cfg.SeasonalProfileKey)
		if err != nil {
			return nil, fmt.Errorf("fetch seasonal profile: %w", err)
		}
		fromStore, err := forecast.LoadSeasonalProfileBytes(data)
		if err != nil {
			return nil, err
		}
		profile = profile.Merge(fromStore)
		log.Info().Str("key", cfg.SeasonalProfileKey).Int("categories", len(fromStore)).Msg("forecast: seasonal profile loaded from storage")
	}

	return forecast.NewEngine(profile, trend), nil
}
