// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package violations implements the violation-aggregation pipeline.

Inbound telemetry flows one way:

	suspicious_event -> Normalize -> Reconciler -> Broadcaster

# Normalization

Normalize collapses the two inbound event shapes (explicit counts
mapping, legacy single violation_type tag) into one canonical increment
set. Entries outside the seven canonical counters, non-positive values,
and unknown legacy tags are dropped without error. An event missing its
session key (question_set_id + candidate_email) or yielding no
increments is rejected silently - malformed telemetry must never break
the channel.

# Reconciliation

Reconciler fetches or creates the per-session-key counter row:

  - existing row: each touched counter becomes stored + increment; only
    the touched counters are written back (partial update by row id)
  - missing row: a fresh row is inserted with untouched counters at 0

Counters are accumulate-only; replaying an increment adds it again.
Reconciliations for one session key are serialized with a per-key mutex
to close the read-modify-write race window; keys do not contend with
each other.

# Pipeline

Pipeline wires the stages together and absorbs every failure locally:
malformed events increment the Dropped counter, storage failures
increment Lost, and nothing propagates past the event handler. On
success the merged seven-counter state is broadcast as a
violation_update to all subscribers.
*/
package violations
