package forecast

import (
	"time"

	"github.com/andresuchdata/mealchain/internal/domain"
)

const bucketDays = 7

// LookbackDays is the history window used for a prediction period: twice the period.
func LookbackDays(predictionPeriod int) int {
	return 2 * predictionPeriod
}

// Window returns the inclusive [from, to] range of ledger dates read for a
// prediction period. It spans exactly LookbackDays calendar days, today included.
func Window(now time.Time, predictionPeriod int) (time.Time, time.Time) {
	return now.AddDate(0, 0, -LookbackDays(predictionPeriod)+1), now
}

// AggregateConsumption folds ledger batches into per-item consumption over a
// window of windowDays ending at windowEnd. Each ingredient occurrence adds
// quantityPerUnit times the batch's effective quantity. Items that never
// appear in a batch get no record.
func AggregateConsumption(batches []domain.ProductionBatch, windowEnd time.Time, windowDays int) map[string]domain.ConsumptionRecord {
	records := make(map[string]domain.ConsumptionRecord)
	if windowDays <= 0 {
		return records
	}

	buckets := windowDays / bucketDays
	for _, batch := range batches {
		qty := batch.EffectiveQuantity()
		idx, bucketed := bucketIndex(batch.ProductionDate, windowEnd, buckets)

		for _, ing := range batch.Ingredients {
			rec, ok := records[ing.ItemID]
			if !ok {
				rec = domain.ConsumptionRecord{
					ItemID:            ing.ItemID,
					PeriodDays:        windowDays,
					WeeklyConsumption: make([]float64, buckets),
				}
			}

			contribution := ing.QuantityPerUnit * qty
			rec.TotalConsumption += contribution
			if bucketed {
				rec.WeeklyConsumption[idx] += contribution
			}
			records[ing.ItemID] = rec
		}
	}

	for id, rec := range records {
		rec.DailyAverage = rec.TotalConsumption / float64(windowDays)
		records[id] = rec
	}

	return records
}

// bucketIndex places a date into one of n full weekly buckets counted back
// from windowEnd; index n-1 is the most recent week.
func bucketIndex(date, windowEnd time.Time, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	age := int(windowEnd.Sub(date).Hours() / 24)
	if age < 0 {
		age = 0
	}
	fromEnd := age / bucketDays
	if fromEnd >= n {
		return 0, false
	}
	return n - 1 - fromEnd, true
}
