// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The SQL is kept
// portable between PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Candidate roster
CREATE TABLE IF NOT EXISTS candidates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    exam_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidates_email ON candidates(email);
CREATE INDEX IF NOT EXISTS idx_candidates_exam_id ON candidates(exam_id);

-- Exam questions
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    exam_id TEXT NOT NULL,
    prompt TEXT NOT NULL,
    question_type TEXT NOT NULL DEFAULT 'mcq',
    options TEXT,
    answer TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_questions_exam_id ON questions(exam_id);

-- Submitted scores, one row per session key
CREATE TABLE IF NOT EXISTS results (
    id TEXT PRIMARY KEY,
    question_set_id TEXT NOT NULL,
    candidate_name TEXT,
    candidate_email TEXT NOT NULL,
    score REAL NOT NULL DEFAULT 0,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (question_set_id, candidate_email)
);

CREATE INDEX IF NOT EXISTS idx_results_session ON results(question_set_id, candidate_email);

-- Violation counters, one row per session key, monotonically increasing
CREATE TABLE IF NOT EXISTS violations (
    id TEXT PRIMARY KEY,
    question_set_id TEXT NOT NULL,
    candidate_name TEXT,
    candidate_email TEXT NOT NULL,
    tab_switches INTEGER NOT NULL DEFAULT 0,
    inactivities INTEGER NOT NULL DEFAULT 0,
    text_selections INTEGER NOT NULL DEFAULT 0,
    copies INTEGER NOT NULL DEFAULT 0,
    pastes INTEGER NOT NULL DEFAULT 0,
    right_clicks INTEGER NOT NULL DEFAULT 0,
    face_not_visible INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (question_set_id, candidate_email)
);

CREATE INDEX IF NOT EXISTS idx_violations_session ON violations(question_set_id, candidate_email);
`
