// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/examwatch/examwatch/middleware"
)

const (
	// Time allowed to write a message to a peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from a peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size in bytes.
	maxMessageSize = 8192

	// Per-connection outbound queue length.
	sendBuffer = 32
)

// Envelope is the wire frame for both directions: a named event with a
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EventHandler receives each inbound client event. Handlers run on
// their own goroutine and may block on storage.
type EventHandler func(ctx context.Context, event string, data json.RawMessage)

// Hub fans outbound events out to every connected client and dispatches
// inbound events to its handler. A single goroutine (Run) owns the
// connection set; registration, removal, and broadcast all go through
// channels, so no locking is needed.
type Hub struct {
	handler EventHandler

	register   chan *connection
	unregister chan *connection
	broadcast  chan []byte

	conns map[*connection]bool

	upgrader websocket.Upgrader
}

func NewHub(handler EventHandler) *Hub {
	return &Hub{
		handler:    handler,
		register:   make(chan *connection),
		unregister: make(chan *connection),
		broadcast:  make(chan []byte, 64),
		conns:      make(map[*connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The HTTP layer handles CORS; the exam app connects from
			// arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetHandler installs the inbound event handler. Must be called before
// Run; the hub and the violation pipeline reference each other, so one
// side has to be wired after construction.
func (h *Hub) SetHandler(handler EventHandler) {
	h.handler = handler
}

// Run owns the connection set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.conns[c] = true
			slog.Info("client connected", "remote", c.remote, "connections", len(h.conns))

		case c := <-h.unregister:
			if h.conns[c] {
				delete(h.conns, c)
				close(c.send)
				slog.Info("client disconnected", "remote", c.remote, "connections", len(h.conns))
			}

		case msg := <-h.broadcast:
			for c := range h.conns {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop the connection rather than
					// block the fan-out.
					delete(h.conns, c)
					close(c.send)
					slog.Warn("dropping slow client", "remote", c.remote)
				}
			}

		case <-ctx.Done():
			for c := range h.conns {
				delete(h.conns, c)
				close(c.send)
			}
			return
		}
	}
}

// Broadcast queues a named event for delivery to all connected clients.
// Delivery is fire-and-forget; if the hub's queue is full the event is
// dropped.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode broadcast payload", "event", event, "error", err)
		return
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		slog.Error("failed to encode broadcast envelope", "event", event, "error", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		slog.Warn("broadcast queue full, dropping event", "event", event)
	}
}

// ServeWS handles GET /ws, upgrading the request to a WebSocket
// connection and pumping messages until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	c := &connection{
		hub:    h,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		remote: middleware.GetClientIP(r),
	}

	h.register <- c

	go c.writePump()
	c.readPump()
}
