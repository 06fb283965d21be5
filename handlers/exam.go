// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/examwatch/examwatch/cliparse"
	"github.com/examwatch/examwatch/middleware"
	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
)

type ExamHandler struct {
	store store.Client
	cfg   cliparse.Config
}

func NewExamHandler(st store.Client, cfg cliparse.Config) *ExamHandler {
	return &ExamHandler{store: st, cfg: cfg}
}

// GetExam handles GET /api/exam/{candidateID}
// Returns the candidate's roster entry and the questions of their exam.
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	rows, err := h.store.Select(r.Context(), store.TableCandidates, store.Filters{"id": candidateID})
	if err != nil {
		slog.Error("failed to query candidate", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(rows) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	row := rows[0]
	candidate := models.Candidate{
		ID:     row.String("id"),
		Name:   row.String("name"),
		Email:  row.String("email"),
		ExamID: row.String("exam_id"),
	}

	questionRows, err := h.store.Select(r.Context(), store.TableQuestions, store.Filters{"exam_id": candidate.ExamID})
	if err != nil {
		slog.Error("failed to query questions", "error", err, "exam_id", candidate.ExamID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions := make([]map[string]any, 0, len(questionRows))
	for _, q := range questionRows {
		questions = append(questions, map[string]any(q))
	}

	middleware.JSONResponse(w, http.StatusOK, models.ExamResponse{
		Candidate: candidate,
		Questions: questions,
	})
}
