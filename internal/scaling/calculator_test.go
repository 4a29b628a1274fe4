package scaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/mealchain/internal/domain"
)

func strPtr(s string) *string { return &s }

func riceRecipe() domain.Recipe {
	return domain.Recipe{
		ID:              "nasi-goreng",
		Name:            "Nasi Goreng",
		BaseServingSize: 50,
		PrepTimeMinutes: 20,
		CookTimeMinutes: 30,
		Ingredients: []domain.RecipeIngredient{
			{ItemID: "rice", ItemName: "Rice", Category: "grain", Unit: "kg", QuantityPerUnit: 2, AverageCost: 1},
		},
	}
}

func TestCalculate_ScalesRecipeExample(t *testing.T) {
	lots := map[string][]domain.InventoryLot{
		"rice": {{ID: "lot-1", ItemID: "rice", Quantity: 10, UnitPrice: 1.5}},
	}

	resp, err := Calculate(riceRecipe(), 200, lots)
	require.NoError(t, err)

	assert.Equal(t, 4.0, resp.BatchInfo.ScalingFactor)
	require.Len(t, resp.InventoryImpact, 1)
	rice := resp.InventoryImpact[0]
	assert.Equal(t, 8.0, rice.Required)
	assert.Equal(t, 10.0, rice.CurrentStock)
	assert.Equal(t, 2.0, rice.AfterProduction)
	assert.True(t, rice.IsAvailable)
	assert.Zero(t, rice.Shortfall)
	assert.InDelta(t, 12.0, rice.EstimatedCost, 1e-9)

	assert.True(t, resp.CanProduce)
	assert.Empty(t, resp.InsufficientItems)
	assert.Equal(t, 110, resp.BatchInfo.EstimatedProductionTime)
	assert.InDelta(t, 12.0, resp.BatchInfo.EstimatedTotalCost, 1e-9)
	assert.InDelta(t, 0.06, resp.BatchInfo.CostPerPortion, 1e-9)
	assert.Equal(t, domain.ScalingSummary{TotalMaterials: 1, AvailableMaterials: 1}, resp.Summary)
}

func TestCalculate_RequiredScalesLinearly(t *testing.T) {
	recipe := riceRecipe()
	recipe.Ingredients = append(recipe.Ingredients,
		domain.RecipeIngredient{ItemID: "egg", ItemName: "Egg", Unit: "pcs", QuantityPerUnit: 0.3},
		domain.RecipeIngredient{ItemID: "oil", ItemName: "Oil", Unit: "l", QuantityPerUnit: 0.07},
	)

	single, err := Calculate(recipe, 130, nil)
	require.NoError(t, err)
	double, err := Calculate(recipe, 260, nil)
	require.NoError(t, err)

	require.Len(t, double.InventoryImpact, len(single.InventoryImpact))
	for i := range single.InventoryImpact {
		assert.InDelta(t, 2*single.InventoryImpact[i].Required, double.InventoryImpact[i].Required, 1e-9,
			single.InventoryImpact[i].MaterialID)
	}
}

func TestCalculate_ReportsShortfall(t *testing.T) {
	recipe := riceRecipe()
	recipe.Ingredients = append(recipe.Ingredients,
		domain.RecipeIngredient{ItemID: "chili", ItemName: "Chili", Unit: "kg", QuantityPerUnit: 0.5, AverageCost: 4},
	)
	lots := map[string][]domain.InventoryLot{
		"rice":  {{ID: "lot-1", Quantity: 5, UnitPrice: 1}},
		"chili": {{ID: "lot-2", Quantity: 3, UnitPrice: 4}},
	}

	resp, err := Calculate(recipe, 200, lots)
	require.NoError(t, err)

	assert.False(t, resp.CanProduce)
	rice := resp.InventoryImpact[0]
	assert.False(t, rice.IsAvailable)
	assert.Equal(t, 3.0, rice.Shortfall)
	assert.Equal(t, -3.0, rice.AfterProduction)

	chili := resp.InventoryImpact[1]
	assert.True(t, chili.IsAvailable)
	assert.Equal(t, 1.0, chili.AfterProduction)

	require.Len(t, resp.InsufficientItems, 1)
	assert.Equal(t, domain.InsufficientItem{MaterialName: "Rice", Required: 8, Available: 5, Unit: "kg"}, resp.InsufficientItems[0])
	assert.Equal(t, 2, resp.Summary.TotalMaterials)
	assert.Equal(t, 1, resp.Summary.AvailableMaterials)
	assert.Equal(t, 1, resp.Summary.InsufficientMaterials)
	assert.InDelta(t, 3.0, resp.Summary.TotalShortfallCost, 1e-9)
}

func TestCalculate_NoLotsFallsBackToAverageCost(t *testing.T) {
	resp, err := Calculate(riceRecipe(), 50, nil)
	require.NoError(t, err)

	rice := resp.InventoryImpact[0]
	assert.Zero(t, rice.CurrentStock)
	assert.Equal(t, 2.0, rice.Shortfall)
	assert.InDelta(t, 2.0, rice.EstimatedCost, 1e-9)
	assert.NotNil(t, rice.InventoryLots)
	assert.Empty(t, rice.InventoryLots)
}

func TestCalculate_WeightedCostBasis(t *testing.T) {
	lots := map[string][]domain.InventoryLot{
		"rice": {
			{ID: "cheap", Quantity: 6, UnitPrice: 1},
			{ID: "dear", Quantity: 2, UnitPrice: 3},
		},
	}

	resp, err := Calculate(riceRecipe(), 100, lots)
	require.NoError(t, err)

	// (6*1 + 2*3) / 8 = 1.5 per kg, 4 kg required
	assert.InDelta(t, 6.0, resp.InventoryImpact[0].EstimatedCost, 1e-9)
}

func TestCalculate_FirstExpiryFirstOut(t *testing.T) {
	lots := map[string][]domain.InventoryLot{
		"rice": {
			{ID: "no-expiry", Quantity: 10},
			{ID: "late", Quantity: 3, ExpiryDate: strPtr("2026-09-01")},
			{ID: "early", Quantity: 3, ExpiryDate: strPtr("2026-07-01")},
			{ID: "empty", Quantity: 0, ExpiryDate: strPtr("2026-06-01")},
		},
	}

	resp, err := Calculate(riceRecipe(), 200, lots)
	require.NoError(t, err)

	allocations := resp.InventoryImpact[0].InventoryLots
	require.Len(t, allocations, 3)
	assert.Equal(t, "early", allocations[0].LotID)
	assert.Equal(t, 3.0, allocations[0].SuggestedUse)
	assert.Equal(t, "late", allocations[1].LotID)
	assert.Equal(t, 3.0, allocations[1].SuggestedUse)
	assert.Equal(t, "no-expiry", allocations[2].LotID)
	assert.Equal(t, 2.0, allocations[2].SuggestedUse)
	assert.Equal(t, 10.0, allocations[2].Quantity, "lots are never mutated")
	assert.Equal(t, 10.0, lots["rice"][0].Quantity)
}

func TestCalculate_MergesDuplicateIngredients(t *testing.T) {
	recipe := riceRecipe()
	recipe.Ingredients = append(recipe.Ingredients,
		domain.RecipeIngredient{ItemID: "rice", ItemName: "Rice", Unit: "kg", QuantityPerUnit: 1},
	)

	resp, err := Calculate(recipe, 50, nil)
	require.NoError(t, err)

	require.Len(t, resp.InventoryImpact, 1)
	assert.Equal(t, 3.0, resp.InventoryImpact[0].Required)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := Calculate(riceRecipe(), 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	recipe := riceRecipe()
	recipe.BaseServingSize = 0
	_, err = Calculate(recipe, 10, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}
