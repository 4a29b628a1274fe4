package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// InsertItem stores an active inventory item.
func InsertItem(t *testing.T, db *sqlx.DB, item domain.InventoryItem) {
	t.Helper()
	mustExec(t, db, `INSERT INTO inventory_items
		(id, name, category, unit, current_stock, minimum_stock, maximum_stock, average_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Category, item.Unit,
		item.CurrentStock, item.MinimumStock, item.MaximumStock, item.AverageCost)
}

// DeactivateItem hides an item from the all-items snapshot.
func DeactivateItem(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	mustExec(t, db, `UPDATE inventory_items SET is_active = FALSE WHERE id = ?`, id)
}

// InsertLot stores a lot with the given status.
func InsertLot(t *testing.T, db *sqlx.DB, lot domain.InventoryLot, status string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO inventory_lots
		(id, item_id, batch_number, quantity, unit_price, expiry_date, supplier_name, quality_status, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lot.ID, lot.ItemID, lot.BatchNumber, lot.Quantity, lot.UnitPrice,
		lot.ExpiryDate, lot.Supplier, lot.QualityStatus, status)
}

// InsertRecipe stores a recipe and its ingredient lines in order. Ingredient
// items must already exist.
func InsertRecipe(t *testing.T, db *sqlx.DB, recipe domain.Recipe) {
	t.Helper()
	mustExec(t, db, `INSERT INTO recipes
		(id, name, base_serving_size, prep_time_minutes, cook_time_minutes)
		VALUES (?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Name, recipe.BaseServingSize, recipe.PrepTimeMinutes, recipe.CookTimeMinutes)

	for i, ing := range recipe.Ingredients {
		mustExec(t, db, `INSERT INTO recipe_ingredients
			(recipe_id, sort_order, item_id, quantity_per_unit)
			VALUES (?, ?, ?, ?)`,
			recipe.ID, i, ing.ItemID, ing.QuantityPerUnit)
	}
}

// InsertBatch stores a ledger entry. date is YYYY-MM-DD.
func InsertBatch(t *testing.T, db *sqlx.DB, id, recipeID, date string, planned float64, actual *float64, status string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO production_batches
		(id, recipe_id, production_date, planned_quantity, actual_quantity, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, recipeID, date, planned, actual, status)
}

func mustExec(t *testing.T, db *sqlx.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("fixture insert failed: %v", err)
	}
}
