package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema holds the collaborator tables read by the planner. The DDL sticks
// to types PostgreSQL and SQLite both accept so tests can run it in memory.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT '',
		unit          TEXT NOT NULL DEFAULT '',
		current_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		minimum_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		maximum_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_cost  DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_lots (
		id             TEXT PRIMARY KEY,
		item_id        TEXT NOT NULL REFERENCES inventory_items(id),
		batch_number   TEXT NOT NULL DEFAULT '',
		quantity       DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_price     DOUBLE PRECISION NOT NULL DEFAULT 0,
		expiry_date    DATE,
		supplier_name  TEXT NOT NULL DEFAULT '',
		quality_status TEXT NOT NULL DEFAULT 'approved',
		status         TEXT NOT NULL DEFAULT 'available',
		received_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		base_serving_size INTEGER NOT NULL,
		prep_time_minutes INTEGER NOT NULL DEFAULT 0,
		cook_time_minutes INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id         TEXT NOT NULL REFERENCES recipes(id),
		sort_order        INTEGER NOT NULL,
		item_id           TEXT NOT NULL REFERENCES inventory_items(id),
		quantity_per_unit DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (recipe_id, sort_order)
	)`,
	`CREATE TABLE IF NOT EXISTS production_batches (
		id               TEXT PRIMARY KEY,
		recipe_id        TEXT NOT NULL REFERENCES recipes(id),
		production_date  DATE NOT NULL,
		planned_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_quantity  DOUBLE PRECISION,
		status           TEXT NOT NULL DEFAULT 'completed'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_lots_item ON inventory_lots (item_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_item ON recipe_ingredients (item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_production_batches_date ON production_batches (production_date)`,
}

// Migrate applies Schema statement by statement. Every statement is
// idempotent, so it is safe to run on every start.
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
