// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPGeneratorGenerate(t *testing.T) {
	var gotPath, gotContentType string
	var gotReq TestRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotReq)

		json.NewEncoder(w).Encode(map[string]any{
			"questions": []map[string]any{
				{"prompt": "What is a goroutine?", "type": "mcq"},
				{"prompt": "Implement a worker pool", "type": "coding"},
			},
		})
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(srv.URL)
	questions, err := gen.Generate(context.Background(), TestRequest{
		Topic:        "Concurrency",
		Difficulty:   "easy",
		NumQuestions: 2,
		QuestionType: "mixed",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotPath != "/generate" {
		t.Errorf("Expected POST /generate, got %s", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if gotReq.Topic != "Concurrency" {
		t.Errorf("Expected topic passed through, got %+v", gotReq)
	}
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if questions[0]["prompt"] != "What is a goroutine?" {
		t.Errorf("Unexpected first question: %v", questions[0])
	}
}

func TestHTTPGeneratorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(srv.URL)
	if _, err := gen.Generate(context.Background(), TestRequest{Topic: "x"}); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestHTTPGeneratorUnreachable(t *testing.T) {
	gen := NewHTTPGenerator("http://127.0.0.1:1")
	if _, err := gen.Generate(context.Background(), TestRequest{Topic: "x"}); err == nil {
		t.Error("Expected error for unreachable service")
	}
}
