package models

// Canonical violation counter column names
const (
	CounterTabSwitches    = "tab_switches"
	CounterInactivities   = "inactivities"
	CounterTextSelections = "text_selections"
	CounterCopies         = "copies"
	CounterPastes         = "pastes"
	CounterRightClicks    = "right_clicks"
	CounterFaceNotVisible = "face_not_visible"
)

// CanonicalCounters is the fixed set of violation tallies tracked per
// session key. Anything outside this set is rejected during normalization.
var CanonicalCounters = []string{
	CounterTabSwitches,
	CounterInactivities,
	CounterTextSelections,
	CounterCopies,
	CounterPastes,
	CounterRightClicks,
	CounterFaceNotVisible,
}

// LegacyTags maps single-tag violation types from the older client event
// shape onto canonical counter names (implied increment of 1). Both the
// singular and plural spellings are in the wild.
var LegacyTags = map[string]string{
	"tab_switch":       CounterTabSwitches,
	"tab_switches":     CounterTabSwitches,
	"inactivity":       CounterInactivities,
	"inactivities":     CounterInactivities,
	"text_selection":   CounterTextSelections,
	"text_selections":  CounterTextSelections,
	"copy":             CounterCopies,
	"copies":           CounterCopies,
	"paste":            CounterPastes,
	"pastes":           CounterPastes,
	"right_click":      CounterRightClicks,
	"right_clicks":     CounterRightClicks,
	"face_not_visible": CounterFaceNotVisible,
}

// IsCanonicalCounter reports whether name is one of the seven tracked
// counter columns.
func IsCanonicalCounter(name string) bool {
	for _, c := range CanonicalCounters {
		if c == name {
			return true
		}
	}
	return false
}

// SessionKey identifies one candidate's attempt at one question set.
type SessionKey struct {
	QuestionSetID  string
	CandidateEmail string
}

// Realtime event names
const (
	EventSuspicious      = "suspicious_event"
	EventViolationUpdate = "violation_update"
)

// Realtime event types

// SuspiciousEvent is the inbound violation telemetry payload. Clients
// send either an explicit Counts mapping or a legacy single ViolationType
// tag. Counts values arrive as JSON numbers and may be floats; they are
// truncated during normalization.
type SuspiciousEvent struct {
	QuestionSetID  string             `json:"question_set_id"`
	CandidateName  string             `json:"candidate_name,omitempty"`
	CandidateEmail string             `json:"candidate_email"`
	Counts         map[string]float64 `json:"counts,omitempty"`
	ViolationType  string             `json:"violation_type,omitempty"`
	Timestamp      string             `json:"timestamp,omitempty"`
}

// ViolationUpdate is the outbound merged counter state broadcast to
// observers after a reconciliation. All seven counters are always
// populated.
type ViolationUpdate struct {
	CandidateEmail string `json:"candidate_email"`
	QuestionSetID  string `json:"question_set_id"`
	TabSwitches    int    `json:"tab_switches"`
	Inactivities   int    `json:"inactivities"`
	TextSelections int    `json:"text_selections"`
	Copies         int    `json:"copies"`
	Pastes         int    `json:"pastes"`
	RightClicks    int    `json:"right_clicks"`
	FaceNotVisible int    `json:"face_not_visible"`
}

// NewViolationUpdate builds an update for a session key from a
// counter-name map, defaulting missing counters to 0.
func NewViolationUpdate(key SessionKey, counters map[string]int) ViolationUpdate {
	return ViolationUpdate{
		CandidateEmail: key.CandidateEmail,
		QuestionSetID:  key.QuestionSetID,
		TabSwitches:    counters[CounterTabSwitches],
		Inactivities:   counters[CounterInactivities],
		TextSelections: counters[CounterTextSelections],
		Copies:         counters[CounterCopies],
		Pastes:         counters[CounterPastes],
		RightClicks:    counters[CounterRightClicks],
		FaceNotVisible: counters[CounterFaceNotVisible],
	}
}

// Counter returns the value of the named canonical counter (0 for an
// unknown name).
func (u ViolationUpdate) Counter(name string) int {
	switch name {
	case CounterTabSwitches:
		return u.TabSwitches
	case CounterInactivities:
		return u.Inactivities
	case CounterTextSelections:
		return u.TextSelections
	case CounterCopies:
		return u.Copies
	case CounterPastes:
		return u.Pastes
	case CounterRightClicks:
		return u.RightClicks
	case CounterFaceNotVisible:
		return u.FaceNotVisible
	}
	return 0
}

// Request types

type SubmitResultRequest struct {
	QuestionSetID  string  `json:"question_set_id"`
	CandidateName  string  `json:"candidate_name"`
	CandidateEmail string  `json:"candidate_email"`
	Score          float64 `json:"score"`
}

// Response types

type SubmitResultResponse struct {
	Status string         `json:"status"`
	Saved  map[string]any `json:"saved_data"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// Domain types

type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	ExamID string `json:"exam_id"`
}

type ExamResponse struct {
	Candidate Candidate        `json:"candidate"`
	Questions []map[string]any `json:"questions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
