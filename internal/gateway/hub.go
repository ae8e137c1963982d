package gateway

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/session"
	"github.com/park285/chess-arena/pkg/wire"
)

const sendBuffer = 64

// conn is one attached socket: a player id and its outbound queue. The
// write pump drains send; closing it ends the pump.
type conn struct {
	playerID string
	send     chan wire.Event
}

// Hub resolves notice targets to live connections. One connection per
// player id; a second handshake for the same id replaces the first.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*conn)}
}

// attach registers the connection and returns the one it displaced, if
// any, so the caller can close the stale socket.
func (h *Hub) attach(c *conn) *conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.conns[c.playerID]
	h.conns[c.playerID] = c
	if prev != nil {
		close(prev.send)
	}
	return prev
}

// detach removes the connection if it is still the current one for its
// player id. It reports whether the player actually went offline.
func (h *Hub) detach(c *conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[c.playerID] != c {
		return false
	}
	delete(h.conns, c.playerID)
	close(c.send)
	return true
}

// Deliver fans the notices of one facade result out to the attached
// connections. Slow consumers are skipped rather than blocked on.
func (h *Hub) Deliver(notices []session.Notice) {
	now := time.Now()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, n := range notices {
		ev := wire.Event{Event: n.Event, Payload: n.Payload, Timestamp: now}
		if n.Broadcast {
			excluded := make(map[string]bool, len(n.Exclude))
			for _, id := range n.Exclude {
				excluded[id] = true
			}
			for id, c := range h.conns {
				if !excluded[id] {
					h.push(c, ev)
				}
			}
			continue
		}
		for _, id := range n.To {
			if c, ok := h.conns[id]; ok {
				h.push(c, ev)
			}
		}
	}
}

func (h *Hub) push(c *conn, ev wire.Event) {
	select {
	case c.send <- ev:
	default:
		obslog.L().Warn("client_buffer_full", zap.String("player_id", c.playerID), zap.String("event", ev.Event))
	}
}

// Online reports the number of attached connections.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
