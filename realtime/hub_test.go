// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
	"github.com/examwatch/examwatch/testutil"
	"github.com/examwatch/examwatch/violations"
)

// startHub runs a hub and exposes it over a test server.
func startHub(t *testing.T, handler EventHandler) (*Hub, string) {
	t.Helper()

	hub := NewHub(handler)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })

	// Registration goes through the hub goroutine; give it a moment
	// before broadcasting.
	time.Sleep(100 * time.Millisecond)

	return ws
}

func readEnvelope(t *testing.T, ws *websocket.Conn) Envelope {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := ws.ReadJSON(&env); err != nil {
		t.Fatalf("Failed to read envelope: %v", err)
	}
	return env
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub, url := startHub(t, nil)

	observer1 := dial(t, url)
	observer2 := dial(t, url)

	hub.Broadcast(models.EventViolationUpdate, models.ViolationUpdate{
		CandidateEmail: "alice@example.com",
		QuestionSetID:  "Q1",
		Copies:         1,
	})

	for _, ws := range []*websocket.Conn{observer1, observer2} {
		env := readEnvelope(t, ws)
		if env.Event != models.EventViolationUpdate {
			t.Errorf("Expected violation_update event, got %q", env.Event)
		}

		var update models.ViolationUpdate
		if err := json.Unmarshal(env.Data, &update); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		if update.Copies != 1 || update.CandidateEmail != "alice@example.com" {
			t.Errorf("Unexpected payload: %+v", update)
		}
	}
}

func TestHubDispatchesInboundEvents(t *testing.T) {
	type received struct {
		event string
		data  json.RawMessage
	}
	got := make(chan received, 1)

	_, url := startHub(t, func(_ context.Context, event string, data json.RawMessage) {
		got <- received{event, data}
	})

	ws := dial(t, url)
	if err := ws.WriteJSON(Envelope{
		Event: models.EventSuspicious,
		Data:  json.RawMessage(`{"question_set_id":"Q1","candidate_email":"alice@example.com","violation_type":"copy"}`),
	}); err != nil {
		t.Fatalf("Failed to write envelope: %v", err)
	}

	select {
	case r := <-got:
		if r.event != models.EventSuspicious {
			t.Errorf("Expected suspicious_event, got %q", r.event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Handler was not invoked")
	}
}

func TestHubIgnoresMalformedFrames(t *testing.T) {
	got := make(chan string, 1)
	_, url := startHub(t, func(_ context.Context, event string, _ json.RawMessage) {
		got <- event
	})

	ws := dial(t, url)
	if err := ws.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}

	// The connection must survive; a valid envelope afterwards still
	// gets through.
	if err := ws.WriteJSON(Envelope{Event: "ping", Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("Failed to write envelope: %v", err)
	}

	select {
	case event := <-got:
		if event != "ping" {
			t.Errorf("Expected ping event, got %q", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Connection did not survive malformed frame")
	}
}

func TestSuspiciousEventEndToEnd(t *testing.T) {
	// Full path: candidate sends suspicious_event over the socket, the
	// pipeline reconciles it, every observer sees the merged state.
	st := testutil.NewMemStore()
	hub := NewHub(nil)
	pipeline := violations.NewPipeline(violations.NewReconciler(st), hub)
	hub.SetHandler(pipeline.HandleEvent)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	candidate := dial(t, url)
	observer := dial(t, url)

	if err := candidate.WriteJSON(Envelope{
		Event: models.EventSuspicious,
		Data:  json.RawMessage(`{"question_set_id":"Q1","candidate_email":"alice@example.com","candidate_name":"Alice","violation_type":"copy"}`),
	}); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	env := readEnvelope(t, observer)
	if env.Event != models.EventViolationUpdate {
		t.Fatalf("Expected violation_update, got %q", env.Event)
	}

	var update models.ViolationUpdate
	if err := json.Unmarshal(env.Data, &update); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	want := models.ViolationUpdate{
		CandidateEmail: "alice@example.com",
		QuestionSetID:  "Q1",
		Copies:         1,
	}
	if update != want {
		t.Errorf("Broadcast = %+v, want %+v", update, want)
	}

	rows := st.Rows(store.TableViolations)
	if len(rows) != 1 || rows[0].Int("copies") != 1 {
		t.Errorf("Expected persisted record with copies=1, got %v", rows)
	}
}
