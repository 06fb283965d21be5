// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TestRequest describes a question-generation request.
type TestRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
	QuestionType string `json:"question_type"`
	JDID         string `json:"jd_id,omitempty"`
	MCQCount     *int   `json:"mcq_count,omitempty"`
	CodingCount  *int   `json:"coding_count,omitempty"`
}

// Question is one generated question object. The shape is owned by the
// generator service; this backend passes it through untouched.
type Question map[string]any

// Generator produces exam questions. The production implementation
// calls an external service; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, req TestRequest) ([]Question, error)
}

// HTTPGenerator calls the question-generation service over HTTP.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGenerator(baseURL string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate POSTs the request to {base}/generate and decodes the
// question list.
func (g *HTTPGenerator) Generate(ctx context.Context, req TestRequest) ([]Question, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}

	return out.Questions, nil
}
