// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"reflect"
	"sync"

	"github.com/examwatch/examwatch/store"
)

// MemStore is an in-memory store.Client for pipeline and handler tests.
// It records every operation in Calls and can be forced to fail by
// setting FailWith.
type MemStore struct {
	mu     sync.Mutex
	tables map[string][]store.Row

	Calls    []string
	FailWith error
}

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][]store.Row)}
}

// Seed inserts rows directly, bypassing the operation log.
func (m *MemStore) Seed(table string, rows ...store.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], r.Clone())
	}
}

// Rows returns a copy of a table's contents.
func (m *MemStore) Rows(table string) []store.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		out = append(out, r.Clone())
	}
	return out
}

// CallCount returns how many operations hit the store.
func (m *MemStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MemStore) record(op, table string) error {
	m.Calls = append(m.Calls, op+" "+table)
	return m.FailWith
}

func matches(row store.Row, filters store.Filters) bool {
	for k, want := range filters {
		if !reflect.DeepEqual(row[k], want) {
			return false
		}
	}
	return true
}

func (m *MemStore) Select(_ context.Context, table string, filters store.Filters) ([]store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("select", table); err != nil {
		return nil, err
	}

	out := []store.Row{}
	for _, r := range m.tables[table] {
		if matches(r, filters) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (m *MemStore) Insert(_ context.Context, table string, row store.Row) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("insert", table); err != nil {
		return nil, err
	}

	m.tables[table] = append(m.tables[table], row.Clone())
	return row.Clone(), nil
}

func (m *MemStore) Update(_ context.Context, table string, id string, partial store.Row) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("update", table); err != nil {
		return nil, err
	}

	for _, r := range m.tables[table] {
		if r.String("id") == id {
			for k, v := range partial {
				r[k] = v
			}
			return r.Clone(), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) Upsert(_ context.Context, table string, row store.Row, conflictKeys ...string) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("upsert", table); err != nil {
		return nil, err
	}

	filters := store.Filters{}
	for _, k := range conflictKeys {
		filters[k] = row[k]
	}

	if len(conflictKeys) > 0 {
		for _, r := range m.tables[table] {
			if matches(r, filters) {
				for k, v := range row {
					if k == "id" {
						continue
					}
					r[k] = v
				}
				return r.Clone(), nil
			}
		}
	}

	m.tables[table] = append(m.tables[table], row.Clone())
	return row.Clone(), nil
}
