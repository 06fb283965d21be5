// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime implements the WebSocket hub for live violation
updates.

# Wire Format

Both directions use one JSON envelope shape:

	{"event": "suspicious_event", "data": {...}}
	{"event": "violation_update", "data": {...}}

# Hub

A single Run goroutine owns the connection set; register, unregister,
and broadcast flow through channels, so the hub needs no mutex.
Per-connection write goroutines isolate slow clients: a client whose
send queue fills up is disconnected instead of stalling the fan-out.

There is no per-session channel partitioning - every subscriber
receives every violation_update and filters client-side by session key.

# Lifecycle

Connect and disconnect are logged with the client IP. No per-connection
state is kept beyond the send queue; session-to-connection association
for targeted delivery is a future extension point.

# Inbound Events

Each inbound envelope is handed to the hub's EventHandler on a fresh
goroutine, so handlers may block on storage without affecting the read
loop. Malformed frames are logged and ignored.
*/
package realtime
