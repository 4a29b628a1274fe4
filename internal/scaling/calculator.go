// Package scaling previews a recipe batch at a target yield against the
// lots currently in stock. Nothing is reserved or deducted.
package scaling

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// Calculate scales recipe to targetPortions and checks every material
// against lotsByItem, the available lots keyed by item ID.
func Calculate(recipe domain.Recipe, targetPortions int, lotsByItem map[string][]domain.InventoryLot) (*domain.ScalingResponse, error) {
	if targetPortions <= 0 {
		return nil, fmt.Errorf("target portions must be positive, got %d: %w", targetPortions, domain.ErrInvalidRequest)
	}
	if recipe.BaseServingSize <= 0 {
		return nil, fmt.Errorf("recipe %s has base serving size %d: %w", recipe.ID, recipe.BaseServingSize, domain.ErrInvalidRecipe)
	}

	factor := float64(targetPortions) / float64(recipe.BaseServingSize)

	resp := &domain.ScalingResponse{
		CanProduce:        true,
		InventoryImpact:   make([]domain.MaterialRequirement, 0, len(recipe.Ingredients)),
		InsufficientItems: make([]domain.InsufficientItem, 0),
	}

	totalCost := decimal.Zero
	shortfallCost := decimal.Zero

	for _, ing := range mergeIngredients(recipe.Ingredients) {
		required := ing.QuantityPerUnit * factor
		lots := lotsByItem[ing.ItemID]

		req, basis := requirement(ing, required, lots)
		resp.InventoryImpact = append(resp.InventoryImpact, req)
		totalCost = totalCost.Add(decimal.NewFromFloat(req.EstimatedCost))

		if req.IsAvailable {
			resp.Summary.AvailableMaterials++
			continue
		}

		resp.CanProduce = false
		resp.Summary.InsufficientMaterials++
		shortfallCost = shortfallCost.Add(decimal.NewFromFloat(req.Shortfall).Mul(basis))
		resp.InsufficientItems = append(resp.InsufficientItems, domain.InsufficientItem{
			MaterialName: req.MaterialName,
			Required:     req.Required,
			Available:    req.CurrentStock,
			Unit:         req.Unit,
		})
	}

	resp.Summary.TotalMaterials = len(resp.InventoryImpact)
	resp.Summary.TotalShortfallCost = shortfallCost.InexactFloat64()

	resp.BatchInfo = domain.BatchInfo{
		RecipeID:                recipe.ID,
		RecipeName:              recipe.Name,
		BaseServingSize:         recipe.BaseServingSize,
		TargetPortions:          targetPortions,
		ScalingFactor:           factor,
		EstimatedProductionTime: productionMinutes(recipe, factor),
		EstimatedTotalCost:      totalCost.InexactFloat64(),
		CostPerPortion:          totalCost.Div(decimal.NewFromInt(int64(targetPortions))).InexactFloat64(),
	}

	return resp, nil
}

func requirement(ing domain.RecipeIngredient, required float64, lots []domain.InventoryLot) (domain.MaterialRequirement, decimal.Decimal) {
	allocations := allocate(lots, required)

	var current float64
	for _, lot := range allocations {
		current += lot.Quantity
	}

	basis := costBasis(allocations, ing.AverageCost)
	req := domain.MaterialRequirement{
		MaterialID:      ing.ItemID,
		MaterialName:    ing.ItemName,
		Category:        ing.Category,
		Unit:            ing.Unit,
		Required:        required,
		CurrentStock:    current,
		AfterProduction: current - required,
		IsAvailable:     current >= required,
		EstimatedCost:   decimal.NewFromFloat(required).Mul(basis).InexactFloat64(),
		InventoryLots:   allocations,
	}
	if !req.IsAvailable {
		req.Shortfall = required - current
	}
	return req, basis
}

// mergeIngredients folds repeated lines for the same item into one, keeping
// the first line's position and metadata.
func mergeIngredients(ingredients []domain.RecipeIngredient) []domain.RecipeIngredient {
	merged := make([]domain.RecipeIngredient, 0, len(ingredients))
	index := make(map[string]int, len(ingredients))
	for _, ing := range ingredients {
		if i, ok := index[ing.ItemID]; ok {
			merged[i].QuantityPerUnit += ing.QuantityPerUnit
			continue
		}
		index[ing.ItemID] = len(merged)
		merged = append(merged, ing)
	}
	return merged
}

// allocate lists lots first-expiry-first-out and marks how much of each a
// draw of required would take. Lots without an expiry date go last.
func allocate(lots []domain.InventoryLot, required float64) []domain.LotAllocation {
	ordered := make([]domain.InventoryLot, 0, len(lots))
	for _, lot := range lots {
		if lot.Quantity > 0 {
			ordered = append(ordered, lot)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return expiresBefore(ordered[i].ExpiryDate, ordered[j].ExpiryDate)
	})

	remaining := required
	allocations := make([]domain.LotAllocation, 0, len(ordered))
	for _, lot := range ordered {
		use := math.Min(lot.Quantity, math.Max(remaining, 0))
		remaining -= use
		allocations = append(allocations, domain.LotAllocation{
			LotID:         lot.ID,
			Quantity:      lot.Quantity,
			UnitPrice:     lot.UnitPrice,
			BatchNumber:   lot.BatchNumber,
			ExpiryDate:    lot.ExpiryDate,
			Supplier:      lot.Supplier,
			QualityStatus: lot.QualityStatus,
			SuggestedUse:  use,
		})
	}
	return allocations
}

// expiresBefore compares ISO dates; nil sorts after any date.
func expiresBefore(a, b *string) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

// costBasis is the quantity-weighted unit price of the lots, or fallback
// when there is no stock to weigh.
func costBasis(lots []domain.LotAllocation, fallback float64) decimal.Decimal {
	value := decimal.Zero
	quantity := decimal.Zero
	for _, lot := range lots {
		q := decimal.NewFromFloat(lot.Quantity)
		value = value.Add(q.Mul(decimal.NewFromFloat(lot.UnitPrice)))
		quantity = quantity.Add(q)
	}
	if !quantity.IsPositive() {
		return decimal.NewFromFloat(fallback)
	}
	return value.Div(quantity)
}

func productionMinutes(recipe domain.Recipe, factor float64) int {
	prep := int(math.Ceil(float64(recipe.PrepTimeMinutes) * factor))
	return prep + recipe.CookTimeMinutes
}
