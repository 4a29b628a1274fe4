package forecast

import (
	"fmt"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// BuildAlerts raises one alert per flagged prediction, in prediction order.
// Stockout risk wins over low stock when both apply.
func BuildAlerts(predictions []domain.Prediction) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	for _, p := range predictions {
		switch {
		case p.StockoutRisk:
			alerts = append(alerts, newAlert(p, domain.AlertStockoutRisk, domain.SeverityCritical, stockoutMessage(p)))
		case p.LowStockWarning:
			alerts = append(alerts, newAlert(p, domain.AlertLowStock, domain.SeverityWarning, lowStockMessage(p)))
		}
	}
	return alerts
}

func newAlert(p domain.Prediction, kind domain.AlertType, severity domain.Severity, message string) domain.Alert {
	return domain.Alert{
		ItemID:            p.ItemID,
		ItemName:          p.ItemName,
		Type:              kind,
		Severity:          severity,
		Message:           message,
		DaysUntilStockout: p.DaysUntilStockout,
		CurrentStock:      p.CurrentStock,
		PredictedStock:    p.PredictedStockLevel,
	}
}

func stockoutMessage(p domain.Prediction) string {
	if p.DaysUntilStockout == domain.NoStockoutForecast {
		return fmt.Sprintf("%s is projected to fall below its minimum stock of %.2f %s", p.ItemName, p.MinimumStock, p.Unit)
	}
	return fmt.Sprintf("%s is projected to run out in %d days", p.ItemName, p.DaysUntilStockout)
}

func lowStockMessage(p domain.Prediction) string {
	return fmt.Sprintf("%s stock is projected to drop to %.2f %s", p.ItemName, p.PredictedStockLevel, p.Unit)
}
