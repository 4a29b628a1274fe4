package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/mealchain/internal/domain"
)

func flagged(id string, days int, risk bool, qty, cost float64) domain.Prediction {
	return domain.Prediction{
		ItemID:                   id,
		ItemName:                 id,
		Unit:                     "kg",
		AverageCost:              cost,
		DaysUntilStockout:        days,
		StockoutRisk:             risk,
		LowStockWarning:          !risk,
		ReorderRecommended:       true,
		RecommendedOrderQuantity: qty,
	}
}

func TestBuildRecommendations_UrgencyOrderIsStable(t *testing.T) {
	predictions := []domain.Prediction{
		flagged("low-1", 999, false, 0, 1),
		flagged("medium-1", 12, true, 10, 1),
		flagged("urgent-1", 3, true, 10, 1),
		{ItemID: "skipped", DaysUntilStockout: 1},
		flagged("medium-2", 14, true, 10, 1),
		flagged("urgent-2", 7, true, 10, 1),
		flagged("low-2", 20, true, 10, 1),
	}

	recs := BuildRecommendations(predictions)

	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ItemID)
	}
	assert.Equal(t, []string{"urgent-1", "urgent-2", "medium-1", "medium-2", "low-1", "low-2"}, ids)
}

func TestBuildRecommendations_Costing(t *testing.T) {
	recs := BuildRecommendations([]domain.Prediction{
		flagged("risk", 2, true, 120, 3.5),
		flagged("warn", 999, false, 0, 3.5),
	})
	require.Len(t, recs, 2)

	risk := recs[0]
	assert.Equal(t, domain.UrgencyUrgent, risk.Urgency)
	assert.InDelta(t, 420.0, risk.EstimatedCost, 1e-9)
	assert.InDelta(t, 63.0, risk.EstimatedSavings, 1e-9)
	assert.Equal(t, "Order within 1 days", risk.Timeline)

	warn := recs[1]
	assert.Equal(t, domain.UrgencyLow, warn.Urgency)
	assert.Zero(t, warn.EstimatedSavings)
	assert.Zero(t, warn.EstimatedCost)
	assert.Equal(t, "Order within 996 days", warn.Timeline)
}

func TestBuildAlerts_Severity(t *testing.T) {
	alerts := BuildAlerts([]domain.Prediction{
		{ItemID: "a", StockoutRisk: true, LowStockWarning: true, DaysUntilStockout: 4},
		{ItemID: "b"},
		{ItemID: "c", LowStockWarning: true, DaysUntilStockout: 999},
	})

	require.Len(t, alerts, 2)
	assert.Equal(t, "a", alerts[0].ItemID)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "c", alerts[1].ItemID)
	assert.Equal(t, domain.SeverityWarning, alerts[1].Severity)
	assert.Equal(t, domain.AlertLowStock, alerts[1].Type)
}

func TestUrgencyForDays(t *testing.T) {
	assert.Equal(t, domain.UrgencyUrgent, domain.UrgencyForDays(0))
	assert.Equal(t, domain.UrgencyUrgent, domain.UrgencyForDays(7))
	assert.Equal(t, domain.UrgencyMedium, domain.UrgencyForDays(8))
	assert.Equal(t, domain.UrgencyMedium, domain.UrgencyForDays(14))
	assert.Equal(t, domain.UrgencyLow, domain.UrgencyForDays(15))
	assert.Negative(t, domain.CompareUrgency(domain.UrgencyUrgent, domain.UrgencyLow))
}
