package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// dateLayout is how DATE columns are bound and read back.
const dateLayout = "2006-01-02"

// LedgerRepository reads the production-batch ledger.
type LedgerRepository interface {
	// GetBatches returns non-cancelled batches produced between from and to
	// (inclusive, by calendar day), each with its recipe's ingredients.
	GetBatches(ctx context.Context, from, to time.Time) ([]domain.ProductionBatch, error)
}

type ledgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

type batchIngredientRow struct {
	BatchID         string          `db:"batch_id"`
	RecipeID        string          `db:"recipe_id"`
	ProductionDate  string          `db:"production_date"`
	PlannedQuantity float64         `db:"planned_quantity"`
	ActualQuantity  sql.NullFloat64 `db:"actual_quantity"`
	ItemID          sql.NullString  `db:"item_id"`
	QuantityPerUnit sql.NullFloat64 `db:"quantity_per_unit"`
}

func (r *ledgerRepository) GetBatches(ctx context.Context, from, to time.Time) ([]domain.ProductionBatch, error) {
	query := r.db.Rebind(`
		SELECT
			pb.id AS batch_id,
			pb.recipe_id,
			pb.production_date,
			pb.planned_quantity,
			pb.actual_quantity,
			ri.item_id,
			ri.quantity_per_unit
		FROM production_batches pb
		LEFT JOIN recipe_ingredients ri ON ri.recipe_id = pb.recipe_id
		WHERE pb.production_date >= ?
		  AND pb.production_date <= ?
		  AND pb.status <> 'cancelled'
		ORDER BY pb.production_date, pb.id, ri.sort_order
	`)

	var rows []batchIngredientRow
	if err := r.db.SelectContext(ctx, &rows, query, from.Format(dateLayout), to.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("error getting production batches: %w", err)
	}

	batches := make([]domain.ProductionBatch, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.BatchID]
		if !ok {
			date, err := parseDate(row.ProductionDate)
			if err != nil {
				return nil, fmt.Errorf("batch %s: %w", row.BatchID, err)
			}
			batch := domain.ProductionBatch{
				ID:              row.BatchID,
				RecipeID:        row.RecipeID,
				ProductionDate:  date,
				PlannedQuantity: row.PlannedQuantity,
			}
			if row.ActualQuantity.Valid {
				actual := row.ActualQuantity.Float64
				batch.ActualQuantity = &actual
			}
			i = len(batches)
			index[row.BatchID] = i
			batches = append(batches, batch)
		}

		if row.ItemID.Valid {
			batches[i].Ingredients = append(batches[i].Ingredients, domain.BatchIngredient{
				ItemID:          row.ItemID.String,
				QuantityPerUnit: row.QuantityPerUnit.Float64,
			})
		}
	}

	return batches, nil
}

// parseDate accepts a bare date or any timestamp text starting with one, as
// drivers differ in how they hand DATE columns back.
func parseDate(value string) (time.Time, error) {
	if len(value) < len(dateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	t, err := time.Parse(dateLayout, value[:len(dateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
