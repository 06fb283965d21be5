// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the examwatch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, gen, hub, cfg)

# Endpoints

Health:

	GET /health
	GET /         - Status JSON

Exam delivery:

	GET /api/exam/{candidateID} - Candidate roster entry plus questions

Question generation (proxied to the generator service):

	GET  /api/test/{testID}   - Demo question set for a test id
	POST /api/test/generate   - Generate questions from a request body

Results:

	POST /api/test/submit - Upsert a score row for a session key
	GET  /api/results/{questionSetID}/{candidateEmail} - Merged
	     result + violation counters view

Realtime:

	GET /ws - WebSocket upgrade for suspicious_event/violation_update

# Handler Initialization

The router creates handler instances with dependency injection:

	examHandler := handlers.NewExamHandler(st, cfg)
	testHandler := handlers.NewTestHandler(gen, cfg)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

The WebSocket route is served by the hub directly.
*/
package router
