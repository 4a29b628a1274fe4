package forecast

import (
	"math"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// minimumCoverDays is the least demand a stockout reorder must cover.
const minimumCoverDays = 7

// project combines a daily demand forecast with the item's stock levels.
func project(item domain.InventoryItem, dailyConsumption float64, period int, alertThreshold float64) domain.Prediction {
	predictedConsumption := dailyConsumption * float64(period)
	predictedStock := item.CurrentStock - predictedConsumption

	p := newPrediction(item)
	p.DailyConsumption = dailyConsumption
	p.PredictedConsumption = predictedConsumption
	p.PredictedStockLevel = predictedStock
	p.DaysUntilStockout = daysUntilStockout(item.CurrentStock, predictedStock, dailyConsumption)
	p.StockoutRisk = predictedStock < item.MinimumStock
	p.LowStockWarning = predictedStock < item.CurrentStock*alertThreshold
	p.ReorderRecommended = p.StockoutRisk || p.LowStockWarning

	if p.StockoutRisk {
		p.RecommendedOrderQuantity = orderQuantity(item, predictedStock, dailyConsumption)
	}

	return p
}

// noHistoryPrediction is the conservative result for an item with no
// recorded consumption: stock holds, nothing is flagged.
func noHistoryPrediction(item domain.InventoryItem) domain.Prediction {
	p := newPrediction(item)
	p.PredictedStockLevel = item.CurrentStock
	p.DaysUntilStockout = domain.NoStockoutForecast
	p.ConfidenceScore = noHistoryConfidence
	p.SeasonalMultiplier = 1
	p.TrendMultiplier = 1
	return p
}

func newPrediction(item domain.InventoryItem) domain.Prediction {
	return domain.Prediction{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Category:     item.Category,
		Unit:         item.Unit,
		CurrentStock: item.CurrentStock,
		MinimumStock: item.MinimumStock,
		AverageCost:  item.AverageCost,
	}
}

// daysUntilStockout is only estimated when stock is projected to run out and
// there is consumption to divide by.
func daysUntilStockout(currentStock, predictedStock, dailyConsumption float64) int {
	if predictedStock > 0 || dailyConsumption <= 0 || math.IsNaN(dailyConsumption) {
		return domain.NoStockoutForecast
	}
	days := math.Floor(currentStock / dailyConsumption)
	if days < 0 {
		return 0
	}
	if days > domain.NoStockoutForecast {
		return domain.NoStockoutForecast
	}
	return int(days)
}

// orderQuantity refills to capacity but never below a week of demand.
// Capacity is the larger of the configured maximum and minimum so an item
// without a maximum still gets a positive order.
func orderQuantity(item domain.InventoryItem, predictedStock, dailyConsumption float64) float64 {
	target := math.Max(item.MaximumStock, item.MinimumStock)
	return math.Max(target-predictedStock, dailyConsumption*minimumCoverDays)
}
