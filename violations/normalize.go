// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package violations

import (
	"github.com/examwatch/examwatch/models"
)

// Normalize maps a raw suspicious event onto canonical counter
// increments. The second return value is false when the event is
// unusable: missing identifying fields, no recognized counters, or an
// unknown legacy tag. Unusable events are dropped by the caller, never
// surfaced as errors.
func Normalize(ev models.SuspiciousEvent) (map[string]int, bool) {
	if ev.QuestionSetID == "" || ev.CandidateEmail == "" {
		return nil, false
	}

	increments := make(map[string]int)

	if len(ev.Counts) > 0 {
		for name, raw := range ev.Counts {
			if !models.IsCanonicalCounter(name) {
				continue
			}
			// Truncate toward zero before the positivity check.
			n := int(raw)
			if n > 0 {
				increments[name] = n
			}
		}
	} else if ev.ViolationType != "" {
		if col, ok := models.LegacyTags[ev.ViolationType]; ok {
			increments[col] = 1
		}
	}

	if len(increments) == 0 {
		return nil, false
	}
	return increments, true
}
