// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SQLClient implements Client on top of database/sql. The generated SQL
// uses $n placeholders and RETURNING, which both lib/pq and modernc
// SQLite accept.
type SQLClient struct {
	db *sql.DB
}

func NewSQLClient(db *sql.DB) *SQLClient {
	return &SQLClient{db: db}
}

// Table and column names come from code, never from clients, but the
// client interpolates them into SQL, so reject anything that is not a
// plain identifier.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func checkIdents(names ...string) error {
	for _, n := range names {
		if !identPattern.MatchString(n) {
			return fmt.Errorf("store: invalid identifier %q", n)
		}
	}
	return nil
}

// sortedKeys gives deterministic column order for generated statements.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *SQLClient) Select(ctx context.Context, table string, filters Filters) ([]Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + table
	keys := sortedKeys(filters)
	if err := checkIdents(keys...); err != nil {
		return nil, err
	}

	args := make([]any, 0, len(keys))
	if len(keys) > 0 {
		clauses := make([]string, 0, len(keys))
		for i, k := range keys {
			clauses = append(clauses, fmt.Sprintf("%s = $%d", k, i+1))
			args = append(args, filters[k])
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return out, nil
}

func (c *SQLClient) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}

	cols := sortedKeys(row)
	if err := checkIdents(cols...); err != nil {
		return nil, err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	saved, err := c.queryOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return saved, nil
}

func (c *SQLClient) Update(ctx context.Context, table string, id string, partial Row) (Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}

	cols := sortedKeys(partial)
	if err := checkIdents(cols...); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("update %s: empty partial", table)
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, partial[col])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		table, strings.Join(sets, ", "), len(cols)+1,
	)

	saved, err := c.queryOne(ctx, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return saved, nil
}

func (c *SQLClient) Upsert(ctx context.Context, table string, row Row, conflictKeys ...string) (Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}
	if len(conflictKeys) == 0 {
		return c.Insert(ctx, table, row)
	}

	cols := sortedKeys(row)
	if err := checkIdents(cols...); err != nil {
		return nil, err
	}
	if err := checkIdents(conflictKeys...); err != nil {
		return nil, err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}

	conflict := make(map[string]bool, len(conflictKeys))
	for _, k := range conflictKeys {
		conflict[k] = true
	}
	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		if conflict[col] || col == "id" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING *",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(conflictKeys, ", "),
		strings.Join(sets, ", "),
	)

	saved, err := c.queryOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", table, err)
	}
	return saved, nil
}

// queryOne runs a statement expected to return exactly one row.
func (c *SQLClient) queryOne(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, sql.ErrNoRows
	}
	return out[0], nil
}

// scanRows reads a result set into generic rows keyed by column name.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
