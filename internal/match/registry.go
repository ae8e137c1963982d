package match

import (
	"sync"

	"github.com/park285/chess-arena/internal/domain"
)

// Registry indexes live games by participant identity. Both participants
// resolve to the same *Game.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]*Game
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]*Game)}
}

// Find returns the live game id participates in, or nil.
func (r *Registry) Find(id string) *Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byUser[id]
}

// Register inserts the game under both participant ids. The busy check
// and the double insertion happen under one write lock, so two invites
// racing on overlapping pairs cannot both succeed.
func (r *Registry) Register(g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byUser[g.White.ID] != nil || r.byUser[g.Black.ID] != nil {
		return domain.ErrPlayerBusy
	}
	r.byUser[g.White.ID] = g
	r.byUser[g.Black.ID] = g
	return nil
}

// Remove drops the game's entries for both participants.
func (r *Registry) Remove(g *Game) {
	r.mu.Lock()
	if r.byUser[g.White.ID] == g {
		delete(r.byUser, g.White.ID)
	}
	if r.byUser[g.Black.ID] == g {
		delete(r.byUser, g.Black.ID)
	}
	r.mu.Unlock()
}

// Len reports the number of distinct live games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[*Game]struct{}, len(r.byUser))
	for _, g := range r.byUser {
		seen[g] = struct{}{}
	}
	return len(seen)
}
