package domain

// AlertType classifies why an item was flagged
type AlertType string

const (
	AlertStockoutRisk AlertType = "stockout_risk"
	AlertLowStock     AlertType = "low_stock"
)

// Severity of a stock alert
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Rank returns the sort priority of a severity (lower = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// CompareSeverity orders a before b when it is more severe, with the same
// sign convention as CompareUrgency.
func CompareSeverity(a, b Severity) int {
	return a.Rank() - b.Rank()
}

// Urgency tier of a restock recommendation
type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Urgency thresholds in days until stockout.
const (
	UrgentWithinDays = 7
	MediumWithinDays = 14
)

// Rank returns the sort priority of an urgency tier (lower = more urgent).
func (u Urgency) Rank() int {
	switch u {
	case UrgencyUrgent:
		return 0
	case UrgencyMedium:
		return 1
	default:
		return 2
	}
}

// CompareUrgency orders a before b when it is more urgent. It returns a
// negative number, zero, or a positive number like strings.Compare.
func CompareUrgency(a, b Urgency) int {
	return a.Rank() - b.Rank()
}

// UrgencyForDays maps days until stockout to an urgency tier.
func UrgencyForDays(days int) Urgency {
	switch {
	case days <= UrgentWithinDays:
		return UrgencyUrgent
	case days <= MediumWithinDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
