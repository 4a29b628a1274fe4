package forecast

import (
	"sort"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// SortPredictions orders predictions soonest stockout first. Ties keep their
// input order.
func SortPredictions(predictions []domain.Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].DaysUntilStockout < predictions[j].DaysUntilStockout
	})
}

// SortRecommendations orders recommendations by urgency tier. Ties keep
// their input order.
func SortRecommendations(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return domain.CompareUrgency(recs[i].Urgency, recs[j].Urgency) < 0
	})
}
