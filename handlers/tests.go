// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/examwatch/examwatch/cliparse"
	"github.com/examwatch/examwatch/generator"
	"github.com/examwatch/examwatch/middleware"
)

type TestHandler struct {
	gen generator.Generator
	cfg cliparse.Config
}

func NewTestHandler(gen generator.Generator, cfg cliparse.Config) *TestHandler {
	return &TestHandler{gen: gen, cfg: cfg}
}

// GetTest handles GET /api/test/{testID}
// Generates a demo question set for the given test id.
func (h *TestHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	testID := r.PathValue("testID")
	if testID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "test id is required")
		return
	}

	req := generator.TestRequest{
		Topic:        "Demo topic for test " + testID,
		Difficulty:   "easy",
		NumQuestions: 5,
		QuestionType: "mcq",
		JDID:         testID,
	}

	questions, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		slog.Error("question generation failed", "error", err, "test_id", testID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Question generation failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"test_id":   testID,
		"questions": questions,
	})
}

// GenerateTest handles POST /api/test/generate
func (h *TestHandler) GenerateTest(w http.ResponseWriter, r *http.Request) {
	var req generator.TestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Topic == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "easy"
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	if req.QuestionType == "" {
		req.QuestionType = "mcq"
	}

	questions, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		slog.Error("question generation failed", "error", err, "topic", req.Topic)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Question generation failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"questions": questions,
	})
}
