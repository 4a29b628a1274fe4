package seed

// Kind is how a CSV cell is converted before it is bound.
type Kind int

const (
	Text Kind = iota
	Float
	Int
	Bool
	// Date is a YYYY-MM-DD text cell.
	Date
)

// Column describes one CSV/table column.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Table describes how a CSV file maps onto a table. Key columns identify
// a row for upserts and must be present in the file.
type Table struct {
	Name    string
	File    string
	Key     []string
	Columns []Column
}

// Master tables: the inventory catalogue and the recipe book.
var Master = []Table{
	{
		Name: "inventory_items",
		File: "inventory_items.csv",
		Key:  []string{"id"},
		Columns: []Column{
			{Name: "id"},
			{Name: "name"},
			{Name: "category"},
			{Name: "unit"},
			{Name: "current_stock", Kind: Float},
			{Name: "minimum_stock", Kind: Float},
			{Name: "maximum_stock", Kind: Float},
			{Name: "average_cost", Kind: Float},
			{Name: "is_active", Kind: Bool},
		},
	},
	{
		Name: "recipes",
		File: "recipes.csv",
		Key:  []string{"id"},
		Columns: []Column{
			{Name: "id"},
			{Name: "name"},
			{Name: "base_serving_size", Kind: Int},
			{Name: "prep_time_minutes", Kind: Int},
			{Name: "cook_time_minutes", Kind: Int},
		},
	},
	{
		Name: "recipe_ingredients",
		File: "recipe_ingredients.csv",
		Key:  []string{"recipe_id", "sort_order"},
		Columns: []Column{
			{Name: "recipe_id"},
			{Name: "sort_order", Kind: Int},
			{Name: "item_id"},
			{Name: "quantity_per_unit", Kind: Float},
		},
	},
}

// Ledger tables: stock lots and the production history.
var Ledger = []Table{
	{
		Name: "inventory_lots",
		File: "inventory_lots.csv",
		Key:  []string{"id"},
		Columns: []Column{
			{Name: "id"},
			{Name: "item_id"},
			{Name: "batch_number"},
			{Name: "quantity", Kind: Float},
			{Name: "unit_price", Kind: Float},
			{Name: "expiry_date", Kind: Date, Nullable: true},
			{Name: "supplier_name"},
			{Name: "quality_status"},
			{Name: "status"},
		},
	},
	{
		Name: "production_batches",
		File: "production_batches.csv",
		Key:  []string{"id"},
		Columns: []Column{
			{Name: "id"},
			{Name: "recipe_id"},
			{Name: "production_date", Kind: Date},
			{Name: "planned_quantity", Kind: Float},
			{Name: "actual_quantity", Kind: Float, Nullable: true},
			{Name: "status"},
		},
	},
}
