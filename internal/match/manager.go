package match

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/board"
	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/invite"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/presence"
	"github.com/park285/chess-arena/internal/rating"
	"github.com/park285/chess-arena/internal/store"
)

// Manager owns the live-game registry and drives the match lifecycle:
// accepted invite -> live game -> moves/resignation/draws -> one-shot
// finalization with rating updates and persistence.
type Manager struct {
	games    *Registry
	invites  *invite.Registry
	presence *presence.Registry
	ratings  *rating.Engine
	store    store.Store
}

func NewManager(games *Registry, invites *invite.Registry, pres *presence.Registry, ratings *rating.Engine, st store.Store) *Manager {
	return &Manager{
		games:    games,
		invites:  invites,
		presence: pres,
		ratings:  ratings,
		store:    st,
	}
}

// Find returns the live game id participates in, or nil.
func (m *Manager) Find(id string) *Game {
	return m.games.Find(id)
}

// Opponent returns the other participant of id's live game. With
// onlineOnly set, a disconnected opponent reads as nil.
func (m *Manager) Opponent(id string, onlineOnly bool) *domain.Player {
	g := m.games.Find(id)
	if g == nil {
		return nil
	}
	opp := g.OpponentOf(id)
	if opp == nil {
		return nil
	}
	if onlineOnly {
		return m.presence.Find(opp.ID)
	}
	return opp
}

// Accept consumes the pending invite held by recipientID and starts the
// game. Colors come from the invite's requested sender color; the
// accepting flow clears both participants' invite state so stale
// accept/reject races see nothing afterward.
func (m *Manager) Accept(recipientID string) (*Game, error) {
	inv, err := m.invites.Find(recipientID)
	if err != nil {
		return nil, domain.ErrNoPendingInvite
	}
	recipient := m.presence.Find(recipientID)
	if recipient == nil {
		return nil, domain.ErrNotFound
	}
	sender := m.presence.Find(inv.FromID)
	if sender == nil {
		// the sender left; the invite is dead weight
		m.invites.Remove(inv.FromID)
		return nil, domain.ErrNoPendingInvite
	}

	g := &Game{
		ID:               uuid.NewString(),
		Type:             inv.Type,
		BaseSeconds:      inv.BaseSeconds,
		IncrementSeconds: inv.IncrementSeconds,
		StartedAt:        time.Now(),
	}
	if inv.FromColor == domain.White {
		g.White, g.Black = sender, recipient
	} else {
		g.White, g.Black = recipient, sender
	}
	g.engine = board.NewEngine()

	if err := m.games.Register(g); err != nil {
		return nil, err
	}
	m.invites.Remove(sender.ID)
	m.invites.Remove(recipient.ID)

	obslog.L().Info("game_start",
		zap.String("game_id", g.ID),
		zap.String("white_id", g.White.ID),
		zap.String("black_id", g.Black.ID),
		zap.String("type", g.Type.String()),
		zap.Int("base_seconds", g.BaseSeconds),
		zap.Int("increment_seconds", g.IncrementSeconds),
	)
	return g, nil
}

// Reject removes and returns the pending invite held by recipientID
// without creating a game.
func (m *Manager) Reject(recipientID string) (*domain.Invite, error) {
	inv, err := m.invites.Find(recipientID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	m.invites.Remove(recipientID)
	obslog.L().Info("invite_reject",
		zap.String("invite_id", inv.ID),
		zap.String("from_id", inv.FromID),
		zap.String("to_id", inv.ToID),
	)
	return inv, nil
}
