package domain

import "time"

// InventoryItem is the stock and cost view of an item at request time
type InventoryItem struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Category     string  `json:"category" db:"category"`
	Unit         string  `json:"unit" db:"unit"`
	CurrentStock float64 `json:"currentStock" db:"current_stock"`
	MinimumStock float64 `json:"minimumStock" db:"minimum_stock"`
	MaximumStock float64 `json:"maximumStock" db:"maximum_stock"`
	AverageCost  float64 `json:"averageCost" db:"average_cost"`
}

// InventoryLot represents a received lot of an inventory item
type InventoryLot struct {
	ID            string  `json:"id" db:"id"`
	ItemID        string  `json:"itemId" db:"item_id"`
	BatchNumber   string  `json:"batchNumber" db:"batch_number"`
	Quantity      float64 `json:"quantity" db:"quantity"`
	UnitPrice     float64 `json:"unitPrice" db:"unit_price"`
	ExpiryDate    *string `json:"expiryDate" db:"expiry_date"`
	Supplier      string  `json:"supplier" db:"supplier_name"`
	QualityStatus string  `json:"qualityStatus" db:"quality_status"`
}

// Recipe is a recipe definition with its resolved ingredient list
type Recipe struct {
	ID              string             `json:"id" db:"id"`
	Name            string             `json:"name" db:"name"`
	BaseServingSize int                `json:"baseServingSize" db:"base_serving_size"`
	PrepTimeMinutes int                `json:"prepTimeMinutes" db:"prep_time_minutes"`
	CookTimeMinutes int                `json:"cookTimeMinutes" db:"cook_time_minutes"`
	Ingredients     []RecipeIngredient `json:"ingredients" db:"-"`
}

// RecipeIngredient is one line of a recipe, joined with the item it consumes
type RecipeIngredient struct {
	ItemID          string  `json:"itemId" db:"item_id"`
	ItemName        string  `json:"itemName" db:"item_name"`
	Category        string  `json:"category" db:"category"`
	Unit            string  `json:"unit" db:"unit"`
	QuantityPerUnit float64 `json:"quantityPerUnit" db:"quantity_per_unit"`
	AverageCost     float64 `json:"averageCost" db:"average_cost"`
}

// MaterialIDs returns the distinct item IDs used by the recipe, in ingredient order.
func (r Recipe) MaterialIDs() []string {
	seen := make(map[string]struct{}, len(r.Ingredients))
	ids := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if _, ok := seen[ing.ItemID]; ok {
			continue
		}
		seen[ing.ItemID] = struct{}{}
		ids = append(ids, ing.ItemID)
	}
	return ids
}

// ProductionBatch is a ledger entry: a recipe produced on a given day
type ProductionBatch struct {
	ID              string
	RecipeID        string
	ProductionDate  time.Time
	PlannedQuantity float64
	ActualQuantity  *float64
	Ingredients     []BatchIngredient
}

// BatchIngredient is the per-unit usage of an item by a batch's recipe
type BatchIngredient struct {
	ItemID          string
	QuantityPerUnit float64
}

// EffectiveQuantity is the batch size used for consumption: the actual
// quantity when recorded, otherwise the planned quantity, otherwise zero.
func (b ProductionBatch) EffectiveQuantity() float64 {
	if b.ActualQuantity != nil && *b.ActualQuantity > 0 {
		return *b.ActualQuantity
	}
	if b.PlannedQuantity > 0 {
		return b.PlannedQuantity
	}
	return 0
}
