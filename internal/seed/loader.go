// Package seed loads the collaborator tables from CSV exports.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// LoadDir upserts every table from its CSV file in dir, in order.
func LoadDir(ctx context.Context, tx *sqlx.Tx, dir string, tables []Table) error {
	for _, table := range tables {
		path := filepath.Join(dir, table.File)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", path, err)
		}

		n, err := LoadTable(ctx, tx, table, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", table.Name, err)
		}

		log.Info().Str("table", table.Name).Str("file", path).Int("rows", n).Msg("seed: table loaded")
	}
	return nil
}

// LoadTable upserts the rows of a CSV document into table. The header
// selects which of the table's columns are written; unknown headers are
// ignored and every key column is required.
func LoadTable(ctx context.Context, tx *sqlx.Tx, table Table, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns, indexes, err := matchColumns(table, header)
	if err != nil {
		return 0, err
	}

	query := tx.Rebind(upsertQuery(table, columns))

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			value, err := convert(col, record[indexes[i]])
			if err != nil {
				return rows, fmt.Errorf("line %d: %w", rows+2, err)
			}
			args[i] = value
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return rows, fmt.Errorf("failed to upsert line %d: %w", rows+2, err)
		}
		rows++
	}

	return rows, nil
}

func matchColumns(table Table, header []string) ([]Column, []int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, key := range table.Key {
		if _, ok := position[key]; !ok {
			return nil, nil, fmt.Errorf("%s: key column %q missing from CSV header", table.Name, key)
		}
	}

	var (
		columns []Column
		indexes []int
	)
	for _, col := range table.Columns {
		if i, ok := position[col.Name]; ok {
			columns = append(columns, col)
			indexes = append(indexes, i)
		}
	}
	return columns, indexes, nil
}

func upsertQuery(table Table, columns []Column) string {
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	var updates []string

	isKey := make(map[string]bool, len(table.Key))
	for _, k := range table.Key {
		isKey[k] = true
	}

	for i, col := range columns {
		names[i] = col.Name
		placeholders[i] = "?"
		if !isKey[col.Name] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col.Name, col.Name))
		}
	}

	conflict := "DO NOTHING"
	if len(updates) > 0 {
		conflict = "DO UPDATE SET " + strings.Join(updates, ", ")
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		table.Name,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(table.Key, ", "),
		conflict,
	)
}

func convert(col Column, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if col.Nullable {
			return nil, nil
		}
		switch col.Kind {
		case Float:
			return 0.0, nil
		case Int:
			return 0, nil
		case Bool:
			return true, nil
		case Date:
			return nil, fmt.Errorf("column %s: date is required", col.Name)
		}
		return "", nil
	}

	switch col.Kind {
	case Float:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return v, nil
	case Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return v, nil
	case Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return v, nil
	case Date:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		return raw, nil
	default:
		return raw, nil
	}
}
