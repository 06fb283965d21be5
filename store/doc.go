// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides a generic table-oriented storage client and
schema creation.

# Client Contract

Four operations, all with equality filters only:

	rows, err := st.Select(ctx, store.TableResults, store.Filters{"candidate_email": email})
	saved, err := st.Insert(ctx, store.TableViolations, row)
	saved, err := st.Update(ctx, store.TableViolations, id, partial)
	saved, err := st.Upsert(ctx, store.TableResults, row, "question_set_id", "candidate_email")

Update on a missing id returns ErrNotFound. Every other failure is a
wrapped driver error.

Components accept the Client interface rather than a concrete handle so
tests can inject an in-memory double (see testutil.MemStore).

# SQL Implementation

SQLClient generates $n-placeholder statements with RETURNING and
ON CONFLICT upserts, valid for both PostgreSQL (lib/pq) and SQLite
(modernc.org/sqlite, 3.35+). Result sets are scanned into generic
Row maps keyed by column name; []byte columns are converted to string.

# Schema Creation

CreateSchema initializes all required tables:

	if err := store.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

  - candidates: roster entries linking candidates to exams
  - questions: question rows per exam
  - results: submitted scores, one per (question_set_id, candidate_email)
  - violations: violation counters, one per (question_set_id, candidate_email)

Both results and violations enforce the one-row-per-session-key
invariant with a UNIQUE constraint.
*/
package store
