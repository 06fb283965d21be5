// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package violations

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
	"github.com/examwatch/examwatch/testutil"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	last   any
}

func (f *fakePublisher) Broadcast(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	f.last = payload
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakePublisher) lastUpdate(t *testing.T) models.ViolationUpdate {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	update, ok := f.last.(models.ViolationUpdate)
	if !ok {
		t.Fatalf("Expected ViolationUpdate payload, got %T", f.last)
	}
	return update
}

func newTestPipeline() (*Pipeline, *testutil.MemStore, *fakePublisher) {
	st := testutil.NewMemStore()
	pub := &fakePublisher{}
	return NewPipeline(NewReconciler(st), pub), st, pub
}

func TestPipelineEndToEnd(t *testing.T) {
	p, st, pub := newTestPipeline()

	// First event: legacy tag on a session with no record
	p.HandleSuspiciousEvent(context.Background(), models.SuspiciousEvent{
		QuestionSetID:  "Q1",
		CandidateEmail: "alice@example.com",
		CandidateName:  "Alice",
		ViolationType:  "copy",
	})

	if pub.count() != 1 {
		t.Fatalf("Expected 1 broadcast, got %d", pub.count())
	}
	update := pub.lastUpdate(t)
	want := models.ViolationUpdate{
		CandidateEmail: "alice@example.com",
		QuestionSetID:  "Q1",
		Copies:         1,
	}
	if update != want {
		t.Errorf("Broadcast = %+v, want %+v", update, want)
	}

	// Second event: batched counts accumulate into the same record
	p.HandleSuspiciousEvent(context.Background(), models.SuspiciousEvent{
		QuestionSetID:  "Q1",
		CandidateEmail: "alice@example.com",
		Counts:         map[string]float64{"copies": 1, "pastes": 3},
	})

	if pub.count() != 2 {
		t.Fatalf("Expected 2 broadcasts, got %d", pub.count())
	}
	update = pub.lastUpdate(t)
	if update.Copies != 2 || update.Pastes != 3 {
		t.Errorf("Expected copies=2 pastes=3, got %+v", update)
	}

	rows := st.Rows(store.TableViolations)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 violation row, got %d", len(rows))
	}
}

func TestPipelineDropsMalformedEvent(t *testing.T) {
	p, st, pub := newTestPipeline()

	// Missing session key: no storage call, no broadcast
	p.HandleSuspiciousEvent(context.Background(), models.SuspiciousEvent{
		ViolationType: "copy",
	})

	if st.CallCount() != 0 {
		t.Errorf("Expected no storage calls, got %d", st.CallCount())
	}
	if pub.count() != 0 {
		t.Errorf("Expected no broadcasts, got %d", pub.count())
	}
	if p.Dropped() != 1 {
		t.Errorf("Expected Dropped()=1, got %d", p.Dropped())
	}
}

func TestPipelineAbsorbsStorageFailure(t *testing.T) {
	p, st, pub := newTestPipeline()
	st.FailWith = errors.New("connection refused")

	p.HandleSuspiciousEvent(context.Background(), models.SuspiciousEvent{
		QuestionSetID:  "Q1",
		CandidateEmail: "alice@example.com",
		ViolationType:  "copy",
	})

	if pub.count() != 0 {
		t.Errorf("Expected no broadcasts after storage failure, got %d", pub.count())
	}
	if p.Lost() != 1 {
		t.Errorf("Expected Lost()=1, got %d", p.Lost())
	}
	if p.Dropped() != 0 {
		t.Errorf("Expected Dropped()=0, got %d", p.Dropped())
	}
}

func TestPipelineHandleEvent(t *testing.T) {
	p, st, pub := newTestPipeline()

	data, _ := json.Marshal(models.SuspiciousEvent{
		QuestionSetID:  "Q1",
		CandidateEmail: "alice@example.com",
		ViolationType:  "face_not_visible",
	})
	p.HandleEvent(context.Background(), models.EventSuspicious, data)

	if pub.count() != 1 {
		t.Fatalf("Expected 1 broadcast, got %d", pub.count())
	}
	if update := pub.lastUpdate(t); update.FaceNotVisible != 1 {
		t.Errorf("Expected face_not_visible=1, got %+v", update)
	}

	// Unknown event names are ignored entirely
	p.HandleEvent(context.Background(), "chat_message", data)
	if st.CallCount() != 2 { // select + insert from the first event only
		t.Errorf("Expected 2 storage calls, got %d", st.CallCount())
	}

	// Undecodable payloads are dropped, not fatal
	p.HandleEvent(context.Background(), models.EventSuspicious, json.RawMessage(`{"counts": "nope"}`))
	if p.Dropped() != 1 {
		t.Errorf("Expected Dropped()=1, got %d", p.Dropped())
	}
}
