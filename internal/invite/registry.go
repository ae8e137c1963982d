package invite

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/park285/chess-arena/internal/domain"
)

// Registry holds pending invitations keyed by recipient. A recipient may
// hold invites from several senders at once; per (sender, recipient)
// pair only the latest one is meaningful.
type Registry struct {
	mu sync.RWMutex
	// recipient id -> invites, append order; last is most relevant
	byRecipient map[string][]*domain.Invite
}

func NewRegistry() *Registry {
	return &Registry{byRecipient: make(map[string][]*domain.Invite)}
}

// Save stores the pending invite the recipient holds from senderID,
// replacing any earlier one from the same sender.
func (r *Registry) Save(senderID string, inv domain.Invite) (*domain.Invite, error) {
	if senderID == "" || inv.ToID == "" {
		return nil, domain.ErrInvalidArgs
	}
	if senderID == inv.ToID {
		return nil, domain.ErrSelfInvite
	}
	inv.FromID = senderID
	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byRecipient[inv.ToID]
	kept := list[:0]
	for _, old := range list {
		if old.FromID != senderID {
			kept = append(kept, old)
		}
	}
	stored := inv
	r.byRecipient[inv.ToID] = append(kept, &stored)
	return &stored, nil
}

// Find returns the most relevant pending invite for the recipient, or
// ErrNotFound when none is pending.
func (r *Registry) Find(recipientID string) (*domain.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byRecipient[recipientID]
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[len(list)-1], nil
}

// Remove clears every invite referencing id as sender or recipient. Used
// on disconnect and when an invite is consumed by accept/reject.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byRecipient, id)
	for to, list := range r.byRecipient {
		kept := list[:0]
		for _, inv := range list {
			if inv.FromID != id {
				kept = append(kept, inv)
			}
		}
		if len(kept) == 0 {
			delete(r.byRecipient, to)
			continue
		}
		r.byRecipient[to] = kept
	}
}
