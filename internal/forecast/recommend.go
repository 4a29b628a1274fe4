package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// rushPremiumRate is the premium avoided by ordering ahead instead of buying
// in an emergency.
var rushPremiumRate = decimal.NewFromFloat(0.15)

const orderLeadDays = 3

// BuildRecommendations costs a purchase for every prediction that needs a
// reorder and orders them by urgency, keeping prediction order within a tier.
func BuildRecommendations(predictions []domain.Prediction) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0)
	for _, p := range predictions {
		if !p.ReorderRecommended {
			continue
		}
		recs = append(recs, recommend(p))
	}
	SortRecommendations(recs)
	return recs
}

func recommend(p domain.Prediction) domain.Recommendation {
	qty := decimal.NewFromFloat(p.RecommendedOrderQuantity)
	cost := qty.Mul(decimal.NewFromFloat(p.AverageCost))

	savings := decimal.Zero
	if p.StockoutRisk {
		savings = cost.Mul(rushPremiumRate)
	}

	return domain.Recommendation{
		ItemID:              p.ItemID,
		ItemName:            p.ItemName,
		Urgency:             domain.UrgencyForDays(p.DaysUntilStockout),
		RecommendedQuantity: p.RecommendedOrderQuantity,
		EstimatedCost:       cost.InexactFloat64(),
		EstimatedSavings:    savings.InexactFloat64(),
		Reason:              reason(p),
		Timeline:            timeline(p.DaysUntilStockout),
	}
}

func reason(p domain.Prediction) string {
	if p.StockoutRisk {
		return fmt.Sprintf("Projected stock %.2f %s is below the minimum of %.2f %s", p.PredictedStockLevel, p.Unit, p.MinimumStock, p.Unit)
	}
	return fmt.Sprintf("Projected stock %.2f %s is low against the current %.2f %s", p.PredictedStockLevel, p.Unit, p.CurrentStock, p.Unit)
}

func timeline(daysUntilStockout int) string {
	days := daysUntilStockout - orderLeadDays
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("Order within %d days", days)
}
