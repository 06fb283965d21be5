// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package violations

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
)

// Reconciler owns read-modify-write transitions on the violations
// table. Reconciliations for the same session key are serialized with a
// per-key mutex: two concurrent events would otherwise both read the
// same stale counters and one increment would be lost on write-back.
// Cross-key reconciliations run in parallel.
type Reconciler struct {
	store store.Client

	mu   sync.Mutex
	keys map[models.SessionKey]*sync.Mutex
}

func NewReconciler(st store.Client) *Reconciler {
	return &Reconciler{
		store: st,
		keys:  make(map[models.SessionKey]*sync.Mutex),
	}
}

func (r *Reconciler) keyLock(key models.SessionKey) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.keys[key]
	if m == nil {
		m = &sync.Mutex{}
		r.keys[key] = m
	}
	return m
}

// Reconcile merges a normalized increment set into the persisted
// counter record for a session key and returns the full seven-counter
// state. An existing record accumulates (stored + increment, only the
// touched counters written back); a missing record is created with
// untouched counters at 0.
func (r *Reconciler) Reconcile(ctx context.Context, key models.SessionKey, candidateName string, increments map[string]int) (models.ViolationUpdate, error) {
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	rows, err := r.store.Select(ctx, store.TableViolations, store.Filters{
		"question_set_id": key.QuestionSetID,
		"candidate_email": key.CandidateEmail,
	})
	if err != nil {
		return models.ViolationUpdate{}, fmt.Errorf("lookup violation record: %w", err)
	}

	counters := make(map[string]int, len(models.CanonicalCounters))

	if len(rows) > 0 {
		row := rows[0]

		partial := store.Row{}
		for col, inc := range increments {
			partial[col] = row.Int(col) + inc
		}

		if _, err := r.store.Update(ctx, store.TableViolations, row.String("id"), partial); err != nil {
			return models.ViolationUpdate{}, fmt.Errorf("accumulate violation counters: %w", err)
		}

		for _, col := range models.CanonicalCounters {
			if v, ok := partial[col]; ok {
				counters[col] = v.(int)
			} else {
				counters[col] = row.Int(col)
			}
		}
	} else {
		row := store.Row{
			"id":              uuid.NewString(),
			"question_set_id": key.QuestionSetID,
			"candidate_name":  candidateName,
			"candidate_email": key.CandidateEmail,
		}
		for _, col := range models.CanonicalCounters {
			row[col] = increments[col]
			counters[col] = increments[col]
		}

		if _, err := r.store.Insert(ctx, store.TableViolations, row); err != nil {
			return models.ViolationUpdate{}, fmt.Errorf("create violation record: %w", err)
		}
	}

	return models.NewViolationUpdate(key, counters), nil
}
