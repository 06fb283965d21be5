// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/examwatch/examwatch/cliparse"
	"github.com/examwatch/examwatch/generator"
	"github.com/examwatch/examwatch/handlers"
	"github.com/examwatch/examwatch/middleware"
	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/realtime"
	"github.com/examwatch/examwatch/store"
)

func NewRouter(st store.Client, gen generator.Generator, hub *realtime.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	examHandler := handlers.NewExamHandler(st, cfg)
	testHandler := handlers.NewTestHandler(gen, cfg)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Exam delivery
	mux.HandleFunc("GET /api/exam/{candidateID}", middleware.WithLogging(examHandler.GetExam))

	// Question generation
	mux.HandleFunc("GET /api/test/{testID}", middleware.WithLogging(testHandler.GetTest))
	mux.HandleFunc("POST /api/test/generate", middleware.WithLogging(testHandler.GenerateTest))

	// Scores and merged result views
	mux.HandleFunc("POST /api/test/submit", middleware.WithLogging(resultsHandler.SubmitResult))
	mux.HandleFunc("GET /api/results/{questionSetID}/{candidateEmail}", middleware.WithLogging(resultsHandler.GetResult))

	// Realtime violation channel
	mux.HandleFunc("GET /ws", hub.ServeWS)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "Server is running."})
	})

	return mux
}
