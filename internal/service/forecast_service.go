package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/mealchain/internal/cache"
	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/domain"
	"github.com/andresuchdata/mealchain/internal/forecast"
	"github.com/andresuchdata/mealchain/internal/repository"
)

// MaxPredictionPeriod is the longest forecast horizon accepted, in days.
const MaxPredictionPeriod = 365

type ForecastService struct {
	ledger    repository.LedgerRepository
	inventory repository.InventoryRepository
	engine    *forecast.Engine
	cache     cache.ForecastCache
	defaults  config.ForecastConfig
	now       func() time.Time
}

func NewForecastService(
	ledger repository.LedgerRepository,
	inventory repository.InventoryRepository,
	engine *forecast.Engine,
	cacheImpl cache.ForecastCache,
	defaults config.ForecastConfig,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	if engine == nil {
		engine = forecast.NewEngine(nil, nil)
	}
	if defaults.DefaultPeriodDays <= 0 {
		defaults.DefaultPeriodDays = forecast.DefaultPredictionPeriod
	}
	if defaults.AlertThreshold < 0 || defaults.AlertThreshold > 1 {
		defaults.AlertThreshold = forecast.DefaultAlertThreshold
	}
	return &ForecastService{
		ledger:    ledger,
		inventory: inventory,
		engine:    engine,
		cache:     cacheImpl,
		defaults:  defaults,
		now:       time.Now,
	}
}

// Run forecasts stock for the requested items, or all active items. A
// failure to read the ledger or the inventory fails the whole run.
func (s *ForecastService) Run(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, error) {
	key, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	if resp, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return resp, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	from, to := forecast.Window(key.Day, key.PredictionPeriod)
	batches, err := s.ledger.GetBatches(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch production ledger: %w", err)
	}

	items, err := s.inventory.GetItems(ctx, key.TargetItems)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory snapshot: %w", err)
	}

	result := s.engine.Run(forecast.Snapshot{
		Items:   items,
		History: forecast.AggregateConsumption(batches, to, forecast.LookbackDays(key.PredictionPeriod)),
	}, forecast.Options{
		PredictionPeriod:   key.PredictionPeriod,
		IncludeSeasonality: key.IncludeSeasonality,
		AlertThreshold:     key.AlertThreshold,
		Now:                key.Day,
	})

	resp := &domain.ForecastResponse{
		RunID:            uuid.NewString(),
		GeneratedAt:      key.Day.UTC(),
		PredictionPeriod: key.PredictionPeriod,
		Predictions:      result.Predictions,
		Alerts:           result.Alerts,
		Recommendations:  result.Recommendations,
		Summary:          result.Summary,
	}

	log.Info().
		Str("run_id", resp.RunID).
		Int("period", key.PredictionPeriod).
		Int("batches", len(batches)).
		Int("items", resp.Summary.TotalItemsAnalyzed).
		Int("critical", resp.Summary.CriticalStockItems).
		Int("warning", resp.Summary.WarningStockItems).
		Msg("forecast: run completed")

	if err := s.cache.Set(ctx, key, resp); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	return resp, nil
}

// InvalidateCache drops every cached forecast, for use after the ledger or
// inventory changes.
func (s *ForecastService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

// Seasonality reports the seasonal curves and trend model in use.
func (s *ForecastService) Seasonality() domain.SeasonalityProfile {
	profile := s.engine.SeasonalProfile()
	categories := make(map[string][]float64, len(profile))
	for name, curve := range profile {
		categories[name] = append([]float64(nil), curve[:]...)
	}
	return domain.SeasonalityProfile{
		TrendModel: s.engine.TrendModelName(),
		Categories: categories,
	}
}

func (s *ForecastService) normalize(req domain.ForecastRequest) (cache.ForecastKey, error) {
	key := cache.ForecastKey{
		Day:                s.now(),
		PredictionPeriod:   req.PredictionPeriod,
		IncludeSeasonality: true,
		AlertThreshold:     s.defaults.AlertThreshold,
		TargetItems:        normalizeItemIDs(req.TargetItems),
	}

	if key.PredictionPeriod == 0 {
		key.PredictionPeriod = s.defaults.DefaultPeriodDays
	}
	if key.PredictionPeriod < 1 || key.PredictionPeriod > MaxPredictionPeriod {
		return key, fmt.Errorf("predictionPeriod must be between 1 and %d, got %d: %w", MaxPredictionPeriod, req.PredictionPeriod, domain.ErrInvalidRequest)
	}

	if req.AlertThreshold != nil {
		key.AlertThreshold = *req.AlertThreshold
	}
	if key.AlertThreshold < 0 || key.AlertThreshold > 1 {
		return key, fmt.Errorf("alertThreshold must be between 0 and 1, got %v: %w", key.AlertThreshold, domain.ErrInvalidRequest)
	}

	if req.IncludeSeasonality != nil {
		key.IncludeSeasonality = *req.IncludeSeasonality
	}

	return key, nil
}

func normalizeItemIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
