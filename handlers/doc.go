// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the examwatch API.

# Handler Types

Each handler is a struct with storage/collaborator and config
dependencies:

  - ExamHandler: candidate exam fetch
  - TestHandler: question generation endpoints
  - ResultsHandler: score submission and merged result retrieval

Handlers are created via constructor functions that accept their
dependencies:

	examHandler := handlers.NewExamHandler(st, cfg)
	testHandler := handlers.NewTestHandler(gen, cfg)

# Endpoints

	GET  /api/exam/{candidateID}  → ExamHandler.GetExam
	GET  /api/test/{testID}       → TestHandler.GetTest
	POST /api/test/generate       → TestHandler.GenerateTest
	POST /api/test/submit         → ResultsHandler.SubmitResult
	GET  /api/results/{questionSetID}/{candidateEmail} → ResultsHandler.GetResult

# Result Merging

GetResult performs two independent point lookups keyed by the session
key: the score row (404 when absent) and the violation counter row
(all seven counters default to 0 when absent), merged into one flat
JSON object.

Violation telemetry itself does not pass through this package; it
arrives over the WebSocket channel (see the realtime and violations
packages).
*/
package handlers
