// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API
and the realtime violation pipeline.

# Counter Vocabulary

The seven canonical violation counters tracked per session key:

	tab_switches, inactivities, text_selections, copies,
	pastes, right_clicks, face_not_visible

LegacyTags maps older single-tag event spellings ("tab_switch", "copy")
onto these columns.

# Realtime Types

  - SuspiciousEvent: inbound telemetry, either counts mapping or legacy tag
  - ViolationUpdate: outbound merged counter state, all seven populated

# Request Types

  - SubmitResultRequest: question_set_id, candidate fields, score

# Response Types

  - SubmitResultResponse: status, saved_data
  - ExamResponse: candidate plus question rows
  - StatusResponse: status
  - ErrorResponse: error, message

# Domain Types

  - SessionKey: (question_set_id, candidate_email) pair
  - Candidate: roster entry linking a candidate to an exam
*/
package models
