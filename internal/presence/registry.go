package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/park285/chess-arena/internal/domain"
)

// Registry tracks which player identities are currently connected.
// Entries are connection-scoped: Leave destroys the presence record but
// not the underlying identity or its statistics.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*domain.Player)}
}

// Join records id as connected and returns its presence entry. Joining
// twice refreshes the display name and keeps the original join time.
// Entries handed out earlier are never written again: a rejoin installs
// a fresh *Player, so live games and snapshots holding the old pointer
// can keep reading it without synchronizing with this registry.
func (r *Registry) Join(id, name string) *domain.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	joinedAt := time.Now()
	if prev, ok := r.players[id]; ok {
		joinedAt = prev.JoinedAt
		if name == "" {
			name = prev.Name
		}
	}
	p := &domain.Player{ID: id, Name: name, JoinedAt: joinedAt}
	r.players[id] = p
	return p
}

// Leave removes the presence entry for id, if any.
func (r *Registry) Leave(id string) {
	r.mu.Lock()
	delete(r.players, id)
	r.mu.Unlock()
}

// Find returns the connected player or nil.
func (r *Registry) Find(id string) *domain.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[id]
}

// FindAll returns a snapshot of connected players ordered by join time.
func (r *Registry) FindAll() []*domain.Player {
	r.mu.RLock()
	out := make([]*domain.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
