// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package violations

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/examwatch/examwatch/models"
)

// Broadcaster publishes a named event to every live-update subscriber.
// Delivery is fire-and-forget.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// Pipeline is the inbound violation path: normalize, reconcile,
// broadcast. Every failure is absorbed here; nothing a client sends can
// take down the event channel. Dropped and lost events are counted for
// observability.
type Pipeline struct {
	rec *Reconciler
	pub Broadcaster

	dropped atomic.Int64 // malformed events, silently rejected
	lost    atomic.Int64 // valid events lost to storage failure
}

func NewPipeline(rec *Reconciler, pub Broadcaster) *Pipeline {
	return &Pipeline{rec: rec, pub: pub}
}

// HandleEvent is the realtime dispatch entry point. Events other than
// suspicious_event are ignored.
func (p *Pipeline) HandleEvent(ctx context.Context, event string, data json.RawMessage) {
	if event != models.EventSuspicious {
		return
	}

	var ev models.SuspiciousEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		p.dropped.Add(1)
		slog.Warn("ignoring undecodable suspicious event", "error", err)
		return
	}

	p.HandleSuspiciousEvent(ctx, ev)
}

// HandleSuspiciousEvent runs one event through the pipeline.
func (p *Pipeline) HandleSuspiciousEvent(ctx context.Context, ev models.SuspiciousEvent) {
	increments, ok := Normalize(ev)
	if !ok {
		p.dropped.Add(1)
		slog.Warn("ignoring suspicious event",
			"question_set_id", ev.QuestionSetID,
			"candidate_email", ev.CandidateEmail,
			"violation_type", ev.ViolationType,
		)
		return
	}

	key := models.SessionKey{
		QuestionSetID:  ev.QuestionSetID,
		CandidateEmail: ev.CandidateEmail,
	}

	update, err := p.rec.Reconcile(ctx, key, ev.CandidateName, increments)
	if err != nil {
		// Event is lost; the record keeps its last-known-good state.
		p.lost.Add(1)
		slog.Error("violation reconcile failed",
			"error", err,
			"question_set_id", key.QuestionSetID,
			"candidate_email", key.CandidateEmail,
		)
		return
	}

	p.pub.Broadcast(models.EventViolationUpdate, update)

	slog.Info("violation batch saved",
		"question_set_id", key.QuestionSetID,
		"candidate_email", key.CandidateEmail,
		"increments", increments,
	)
}

// Dropped reports how many malformed events have been silently rejected.
func (p *Pipeline) Dropped() int64 { return p.dropped.Load() }

// Lost reports how many valid events were lost to storage failures.
func (p *Pipeline) Lost() int64 { return p.lost.Load() }
