// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package violations

import (
	"reflect"
	"testing"

	"github.com/examwatch/examwatch/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		event models.SuspiciousEvent
		want  map[string]int
		ok    bool
	}{
		{
			name: "explicit counts with unknown field",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				Counts:         map[string]float64{"copies": 2, "unknown_field": 5},
			},
			want: map[string]int{"copies": 2},
			ok:   true,
		},
		{
			name: "legacy single tag",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				ViolationType:  "tab_switch",
			},
			want: map[string]int{"tab_switches": 1},
			ok:   true,
		},
		{
			name: "legacy plural spelling",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				ViolationType:  "pastes",
			},
			want: map[string]int{"pastes": 1},
			ok:   true,
		},
		{
			name: "counts take precedence over legacy tag",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				Counts:         map[string]float64{"copies": 1},
				ViolationType:  "tab_switch",
			},
			want: map[string]int{"copies": 1},
			ok:   true,
		},
		{
			name: "float counts truncate toward zero",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				Counts:         map[string]float64{"copies": 2.9, "pastes": 0.5},
			},
			want: map[string]int{"copies": 2},
			ok:   true,
		},
		{
			name: "non-positive counts dropped",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				Counts:         map[string]float64{"copies": 0, "pastes": -3},
			},
			ok: false,
		},
		{
			name: "missing session key",
			event: models.SuspiciousEvent{
				Counts: map[string]float64{"copies": 2},
			},
			ok: false,
		},
		{
			name: "missing candidate email",
			event: models.SuspiciousEvent{
				QuestionSetID: "Q1",
				ViolationType: "copy",
			},
			ok: false,
		},
		{
			name: "unknown legacy tag",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
				ViolationType:  "phone_detected",
			},
			ok: false,
		},
		{
			name: "no counts and no tag",
			event: models.SuspiciousEvent{
				QuestionSetID:  "Q1",
				CandidateEmail: "alice@example.com",
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.event)
			if ok != tt.ok {
				t.Fatalf("Normalize ok = %v, want %v", ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize = %v, want %v", got, tt.want)
			}
		})
	}
}
