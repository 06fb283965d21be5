// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
)

// Table names owned by this service.
const (
	TableCandidates = "candidates"
	TableQuestions  = "questions"
	TableResults    = "results"
	TableViolations = "violations"
)

var (
	// ErrNotFound is returned by Update when no row matches the given id.
	ErrNotFound = errors.New("store: row not found")
)

// Filters is an equality filter set: column name -> required value.
type Filters map[string]any

// Row is a single table row keyed by column name.
type Row map[string]any

// Client is a table-oriented storage handle. All operations are
// synchronous and may fail with a wrapped driver error. Components
// receive a Client at construction time so tests can substitute a
// double.
type Client interface {
	Select(ctx context.Context, table string, filters Filters) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, partial Row) (Row, error)
	Upsert(ctx context.Context, table string, row Row, conflictKeys ...string) (Row, error)
}

// Int reads an integer column from a row, tolerating the numeric types
// different drivers and JSON decoding produce. Missing or non-numeric
// values read as 0.
func (r Row) Int(column string) int {
	switch v := r[column].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// String reads a text column from a row, with "" for missing values.
func (r Row) String(column string) string {
	if s, ok := r[column].(string); ok {
		return s
	}
	return ""
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
