// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/examwatch/examwatch/models"
	"github.com/examwatch/examwatch/store"
	"github.com/examwatch/examwatch/testutil"
)

func TestGetExam(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(store.TableCandidates, store.Row{
		"id":      "c1",
		"name":    "Alice",
		"email":   "alice@example.com",
		"exam_id": "E1",
	})
	st.Seed(store.TableQuestions,
		store.Row{"id": "q1", "exam_id": "E1", "prompt": "What is Go?", "question_type": "mcq"},
		store.Row{"id": "q2", "exam_id": "E1", "prompt": "Explain channels", "question_type": "coding"},
		store.Row{"id": "q3", "exam_id": "E2", "prompt": "Other exam", "question_type": "mcq"},
	)

	handler := NewExamHandler(st, testutil.GetTestConfig())

	t.Run("known candidate", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/exam/c1", nil, nil)
		req.SetPathValue("candidateID", "c1")
		w := httptest.NewRecorder()

		handler.GetExam(w, req)
		testutil.AssertStatus(t, w, 200)

		var resp models.ExamResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Candidate.Name != "Alice" || resp.Candidate.ExamID != "E1" {
			t.Errorf("Unexpected candidate: %+v", resp.Candidate)
		}
		if len(resp.Questions) != 2 {
			t.Errorf("Expected 2 questions for exam E1, got %d", len(resp.Questions))
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/exam/nobody", nil, nil)
		req.SetPathValue("candidateID", "nobody")
		w := httptest.NewRecorder()

		handler.GetExam(w, req)
		testutil.AssertStatus(t, w, 404)
	})

	t.Run("storage failure", func(t *testing.T) {
		failing := testutil.NewMemStore()
		failing.FailWith = errors.New("connection refused")
		h := NewExamHandler(failing, testutil.GetTestConfig())

		req := testutil.MakeRequest("GET", "/api/exam/c1", nil, nil)
		req.SetPathValue("candidateID", "c1")
		w := httptest.NewRecorder()

		h.GetExam(w, req)
		testutil.AssertStatus(t, w, 500)
	})
}
