// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/examwatch/examwatch/cliparse"
	"github.com/examwatch/examwatch/middleware"
	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
)

type ResultsHandler struct {
	store store.Client
	cfg   cliparse.Config
}

func NewResultsHandler(st store.Client, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// SubmitResult handles POST /api/test/submit
// Upserts the score row for the session key, so a resubmission replaces
// the score instead of creating a second row.
func (h *ResultsHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.QuestionSetID == "" || req.CandidateEmail == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_set_id and candidate_email are required")
		return
	}

	row := store.Row{
		"id":              uuid.NewString(),
		"question_set_id": req.QuestionSetID,
		"candidate_name":  req.CandidateName,
		"candidate_email": req.CandidateEmail,
		"score":           req.Score,
	}

	saved, err := h.store.Upsert(r.Context(), store.TableResults, row, "question_set_id", "candidate_email")
	if err != nil {
		slog.Error("failed to save result", "error", err,
			"question_set_id", req.QuestionSetID,
			"candidate_email", req.CandidateEmail,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save result")
		return
	}

	slog.Info("result saved",
		"question_set_id", req.QuestionSetID,
		"candidate_email", req.CandidateEmail,
		"score", req.Score,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResultResponse{
		Status: "success",
		Saved:  map[string]any(saved),
	})
}

// GetResult handles GET /api/results/{questionSetID}/{candidateEmail}
// Merges the result row with the session's violation counters. A
// missing result row is 404; a missing violation row reads as all
// counters at 0.
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	questionSetID := r.PathValue("questionSetID")
	candidateEmail := r.PathValue("candidateEmail")
	if questionSetID == "" || candidateEmail == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question set id and candidate email are required")
		return
	}

	filters := store.Filters{
		"question_set_id": questionSetID,
		"candidate_email": candidateEmail,
	}

	resultRows, err := h.store.Select(r.Context(), store.TableResults, filters)
	if err != nil {
		slog.Error("failed to query result", "error", err,
			"question_set_id", questionSetID,
			"candidate_email", candidateEmail,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(resultRows) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result not found")
		return
	}

	violationRows, err := h.store.Select(r.Context(), store.TableViolations, filters)
	if err != nil {
		slog.Error("failed to query violations", "error", err,
			"question_set_id", questionSetID,
			"candidate_email", candidateEmail,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	merged := resultRows[0].Clone()
	for _, col := range models.CanonicalCounters {
		merged[col] = 0
	}
	if len(violationRows) > 0 {
		for _, col := range models.CanonicalCounters {
			merged[col] = violationRows[0].Int(col)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any(merged))
}
