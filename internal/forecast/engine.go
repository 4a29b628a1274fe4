package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// Default run options.
const (
	DefaultPredictionPeriod = 30
	DefaultAlertThreshold   = 0.20
)

// Options tune a single forecast run.
type Options struct {
	PredictionPeriod   int
	IncludeSeasonality bool
	AlertThreshold     float64
	// Now anchors the seasonal month. Zero means time.Now().
	Now time.Time
}

// Snapshot is everything a run reads: the inventory items to analyse and
// their consumption over the lookback window.
type Snapshot struct {
	Items   []domain.InventoryItem
	History map[string]domain.ConsumptionRecord
}

// Result is the output of Engine.Run.
type Result struct {
	Predictions     []domain.Prediction
	Alerts          []domain.Alert
	Recommendations []domain.Recommendation
	Summary         domain.ForecastSummary
}

// Engine projects stock for a snapshot. It holds only immutable
// configuration and is safe for concurrent use.
type Engine struct {
	seasonal SeasonalProfile
	trend    TrendModel
}

// NewEngine builds an engine. A nil profile uses DefaultSeasonalProfile and a
// nil trend model uses a LinearTrend.
func NewEngine(profile SeasonalProfile, trend TrendModel) *Engine {
	if profile == nil {
		profile = DefaultSeasonalProfile()
	}
	if trend == nil {
		trend = LinearTrend{}
	}
	return &Engine{seasonal: profile, trend: trend}
}

// SeasonalProfile returns the profile the engine applies.
func (e *Engine) SeasonalProfile() SeasonalProfile {
	return e.seasonal
}

// TrendModelName returns the name of the configured trend model.
func (e *Engine) TrendModelName() string {
	return e.trend.Name()
}

// Run forecasts every snapshot item over opts.PredictionPeriod days.
func (e *Engine) Run(snap Snapshot, opts Options) Result {
	opts = withDefaults(opts)
	month := opts.Now.Month()

	predictions := make([]domain.Prediction, 0, len(snap.Items))
	for _, item := range snap.Items {
		rec, ok := snap.History[item.ID]
		if !ok {
			predictions = append(predictions, noHistoryPrediction(item))
			continue
		}

		seasonal := 1.0
		if opts.IncludeSeasonality {
			seasonal = e.seasonal.Multiplier(item.Category, month)
		}
		trend := e.trend.Multiplier(rec)
		daily := rec.DailyAverage * seasonal * trend

		p := project(item, daily, opts.PredictionPeriod, opts.AlertThreshold)
		p.SeasonalMultiplier = seasonal
		p.TrendMultiplier = trend
		p.ConfidenceScore = ConfidenceScore(rec, opts.IncludeSeasonality)
		predictions = append(predictions, p)
	}

	SortPredictions(predictions)
	alerts := BuildAlerts(predictions)
	recs := BuildRecommendations(predictions)

	return Result{
		Predictions:     predictions,
		Alerts:          alerts,
		Recommendations: recs,
		Summary:         summarize(predictions, alerts, recs),
	}
}

func withDefaults(opts Options) Options {
	if opts.PredictionPeriod <= 0 {
		opts.PredictionPeriod = DefaultPredictionPeriod
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return opts
}

func summarize(predictions []domain.Prediction, alerts []domain.Alert, recs []domain.Recommendation) domain.ForecastSummary {
	summary := domain.ForecastSummary{TotalItemsAnalyzed: len(predictions)}
	for _, a := range alerts {
		switch a.Severity {
		case domain.SeverityCritical:
			summary.CriticalStockItems++
		case domain.SeverityWarning:
			summary.WarningStockItems++
		}
	}

	savings := decimal.Zero
	for _, r := range recs {
		savings = savings.Add(decimal.NewFromFloat(r.EstimatedSavings))
	}
	summary.TotalSavingsPotential = savings.InexactFloat64()

	return summary
}
