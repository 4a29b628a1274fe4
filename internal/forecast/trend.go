package forecast

import (
	"fmt"
	"math"
	"strings"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// TrendModel turns an item's consumption history into a demand multiplier
// applied on top of the daily average.
type TrendModel interface {
	Name() string
	Multiplier(rec domain.ConsumptionRecord) float64
}

// Trend model names accepted by NewTrendModel.
const (
	TrendLinear = "linear"
	TrendFixed  = "fixed"
	TrendNone   = "none"
)

// DefaultGrowthRate is the growth assumed by the fixed model when none is configured.
const DefaultGrowthRate = 0.05

// NoTrend leaves demand unchanged.
type NoTrend struct{}

func (NoTrend) Name() string { return TrendNone }

func (NoTrend) Multiplier(domain.ConsumptionRecord) float64 { return 1 }

// FixedGrowth applies the same growth to every item regardless of history.
type FixedGrowth struct {
	Rate float64
}

func (FixedGrowth) Name() string { return TrendFixed }

func (m FixedGrowth) Multiplier(domain.ConsumptionRecord) float64 {
	return 1 + m.Rate
}

// LinearTrend fits a least-squares line through weekly consumption and
// projects one week ahead. The multiplier is that projection over the mean
// week, clamped to [Floor, Ceiling]. Histories shorter than MinBuckets weeks
// or with no consumption stay at 1.0.
type LinearTrend struct {
	MinBuckets int
	Floor      float64
	Ceiling    float64
}

func (LinearTrend) Name() string { return TrendLinear }

func (m LinearTrend) Multiplier(rec domain.ConsumptionRecord) float64 {
	ys := rec.WeeklyConsumption
	n := len(ys)
	if n < 2 || n < m.MinBuckets {
		return 1
	}

	var sumY float64
	for _, y := range ys {
		sumY += y
	}
	meanY := sumY / float64(n)
	if meanY <= 0 {
		return 1
	}

	meanX := float64(n-1) / 2
	var sxy, sxx float64
	for i, y := range ys {
		dx := float64(i) - meanX
		sxy += dx * (y - meanY)
		sxx += dx * dx
	}
	slope := sxy / sxx

	next := meanY + slope*(float64(n)-meanX)
	return clamp(next/meanY, m.floor(), m.ceiling())
}

func (m LinearTrend) floor() float64 {
	if m.Floor <= 0 {
		return 0.5
	}
	return m.Floor
}

func (m LinearTrend) ceiling() float64 {
	if m.Ceiling <= 0 {
		return 1.5
	}
	return m.Ceiling
}

// NewTrendModel builds a trend model by name. growthRate only applies to the
// fixed model; minBuckets only to the linear one.
func NewTrendModel(name string, growthRate float64, minBuckets int) (TrendModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TrendLinear:
		return LinearTrend{MinBuckets: minBuckets}, nil
	case TrendFixed:
		return FixedGrowth{Rate: growthRate}, nil
	case TrendNone:
		return NoTrend{}, nil
	default:
		return nil, fmt.Errorf("unknown trend model %q", name)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
