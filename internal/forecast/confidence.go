package forecast

import "github.com/andresuchdata/mealchain/internal/domain"

const (
	minConfidence       = 30
	maxConfidence       = 95
	noHistoryConfidence = minConfidence
	baseConfidence      = 50
)

// ConfidenceScore rates how far a forecast built on rec can be trusted,
// clamped to [30, 95].
func ConfidenceScore(rec domain.ConsumptionRecord, seasonalityApplied bool) int {
	score := baseConfidence

	switch {
	case rec.PeriodDays >= 60:
		score += 20
	case rec.PeriodDays >= 30:
		score += 10
	}

	if rec.DailyAverage > 0 {
		score += 15
	}

	if seasonalityApplied {
		score += 5
	}

	return clampConfidence(score)
}

func clampConfidence(score int) int {
	if score < minConfidence {
		return minConfidence
	}
	if score > maxConfidence {
		return maxConfidence
	}
	return score
}
