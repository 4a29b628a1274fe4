package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// InventoryRepository reads the current inventory snapshot.
type InventoryRepository interface {
	// GetItems returns the listed items, or every active item when ids is empty.
	GetItems(ctx context.Context, ids []string) ([]domain.InventoryItem, error)
	// GetAvailableLots returns the stocked, available lots of each item, keyed by item ID.
	GetAvailableLots(ctx context.Context, itemIDs []string) (map[string][]domain.InventoryLot, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const itemColumns = `id, name, category, unit, current_stock, minimum_stock, maximum_stock, average_cost`

func (r *inventoryRepository) GetItems(ctx context.Context, ids []string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE is_active = TRUE ORDER BY name, id`
	var args []interface{}

	if len(ids) > 0 {
		var err error
		query, args, err = sqlx.In(`SELECT `+itemColumns+` FROM inventory_items WHERE id IN (?) ORDER BY name, id`, ids)
		if err != nil {
			return nil, fmt.Errorf("error building inventory query: %w", err)
		}
	}

	items := make([]domain.InventoryItem, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("error getting inventory items: %w", err)
	}

	return items, nil
}

type lotRow struct {
	domain.InventoryLot
	Expiry sql.NullString `db:"expiry"`
}

func (r *inventoryRepository) GetAvailableLots(ctx context.Context, itemIDs []string) (map[string][]domain.InventoryLot, error) {
	lots := make(map[string][]domain.InventoryLot)
	if len(itemIDs) == 0 {
		return lots, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, item_id, batch_number, quantity, unit_price, expiry_date AS expiry,
			supplier_name, quality_status
		FROM inventory_lots
		WHERE item_id IN (?)
		  AND status = 'available'
		  AND quantity > 0
		ORDER BY item_id, id
	`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("error building lot query: %w", err)
	}

	var rows []lotRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("error getting inventory lots: %w", err)
	}

	for _, row := range rows {
		lot := row.InventoryLot
		if row.Expiry.Valid && row.Expiry.String != "" {
			date, err := parseDate(row.Expiry.String)
			if err != nil {
				return nil, fmt.Errorf("lot %s: %w", lot.ID, err)
			}
			expiry := date.Format(dateLayout)
			lot.ExpiryDate = &expiry
		}
		lots[lot.ItemID] = append(lots[lot.ItemID], lot)
	}

	return lots, nil
}
