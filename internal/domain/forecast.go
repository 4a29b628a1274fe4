package domain

import "time"

// NoStockoutForecast is the daysUntilStockout value used when no depletion
// is projected within the horizon, or when it cannot be estimated.
const NoStockoutForecast = 999

// ConsumptionRecord is an item's consumption over the lookback window
type ConsumptionRecord struct {
	ItemID           string  `json:"itemId"`
	TotalConsumption float64 `json:"totalConsumption"`
	DailyAverage     float64 `json:"dailyAverage"`
	PeriodDays       int     `json:"periodDays"`
	// WeeklyConsumption holds full 7-day buckets counted back from the
	// window end, oldest first.
	WeeklyConsumption []float64 `json:"weeklyConsumption,omitempty"`
}

// ForecastRequest is the body of a forecast run. Nil pointers take the
// configured defaults.
type ForecastRequest struct {
	PredictionPeriod   int      `json:"predictionPeriod"`
	TargetItems        []string `json:"targetItems"`
	IncludeSeasonality *bool    `json:"includeSeasonality"`
	AlertThreshold     *float64 `json:"alertThreshold"`
}

// Prediction is the projected stock position of one item
type Prediction struct {
	ItemID                   string  `json:"itemId"`
	ItemName                 string  `json:"itemName"`
	Category                 string  `json:"category"`
	Unit                     string  `json:"unit"`
	CurrentStock             float64 `json:"currentStock"`
	MinimumStock             float64 `json:"minimumStock"`
	AverageCost              float64 `json:"averageCost"`
	DailyConsumption         float64 `json:"dailyConsumption"`
	PredictedConsumption     float64 `json:"predictedConsumption"`
	PredictedStockLevel      float64 `json:"predictedStockLevel"`
	DaysUntilStockout        int     `json:"daysUntilStockout"`
	StockoutRisk             bool    `json:"stockoutRisk"`
	LowStockWarning          bool    `json:"lowStockWarning"`
	ReorderRecommended       bool    `json:"reorderRecommended"`
	RecommendedOrderQuantity float64 `json:"recommendedOrderQuantity"`
	ConfidenceScore          int     `json:"confidenceScore"`
	SeasonalMultiplier       float64 `json:"seasonalMultiplier"`
	TrendMultiplier          float64 `json:"trendMultiplier"`
}

// Alert is raised for every prediction flagged as stockout risk or low stock
type Alert struct {
	ItemID            string    `json:"itemId"`
	ItemName          string    `json:"itemName"`
	Type              AlertType `json:"type"`
	Severity          Severity  `json:"severity"`
	Message           string    `json:"message"`
	DaysUntilStockout int       `json:"daysUntilStockout"`
	CurrentStock      float64   `json:"currentStock"`
	PredictedStock    float64   `json:"predictedStock"`
}

// Recommendation is a costed purchase suggestion
type Recommendation struct {
	ItemID              string  `json:"itemId"`
	ItemName            string  `json:"itemName"`
	Urgency             Urgency `json:"urgency"`
	RecommendedQuantity float64 `json:"recommendedQuantity"`
	EstimatedCost       float64 `json:"estimatedCost"`
	EstimatedSavings    float64 `json:"estimatedSavings"`
	Reason              string  `json:"reason"`
	Timeline            string  `json:"timeline"`
}

// ForecastSummary aggregates a forecast run
type ForecastSummary struct {
	TotalItemsAnalyzed    int     `json:"totalItemsAnalyzed"`
	CriticalStockItems    int     `json:"criticalStockItems"`
	WarningStockItems     int     `json:"warningStockItems"`
	TotalSavingsPotential float64 `json:"totalSavingsPotential"`
}

// ForecastResponse is the full output of a forecast run
type ForecastResponse struct {
	RunID            string           `json:"runId"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	PredictionPeriod int              `json:"predictionPeriod"`
	Predictions      []Prediction     `json:"predictions"`
	Alerts           []Alert          `json:"alerts"`
	Recommendations  []Recommendation `json:"recommendations"`
	Summary          ForecastSummary  `json:"summary"`
}

// SeasonalityProfile describes the demand adjustments a forecast applies
type SeasonalityProfile struct {
	TrendModel string               `json:"trendModel"`
	Categories map[string][]float64 `json:"categories"`
}
