package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/invite"
	"github.com/park285/chess-arena/internal/match"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/presence"
)

// Facade is the single entry point the transport layer calls into. It
// owns the process-wide registries, translates client events into
// registry/coordinator calls, and answers with notification intents.
type Facade struct {
	presence *presence.Registry
	invites  *invite.Registry
	matches  *match.Manager
}

func NewFacade(pres *presence.Registry, invites *invite.Registry, matches *match.Manager) *Facade {
	return &Facade{presence: pres, invites: invites, matches: matches}
}

// Connect registers id as online. The caller gets the players snapshot
// taken before it joined (and, on reconnect, its live game state);
// everyone else hears player_joined.
func (f *Facade) Connect(id, name string) *Result {
	r := &Result{}
	others := f.presence.FindAll()
	p := f.presence.Join(id, name)

	r.toOne(id, EvPlayersList, others)
	r.broadcast(EvPlayerJoined, p, id)
	if g := f.matches.Find(id); g != nil {
		r.toOne(id, EvGameState, g.Snapshot())
	}
	obslog.L().Info("player_join", zap.String("player_id", id), zap.String("name", name))
	return r
}

// Disconnect clears presence and invite state. A live game is left
// untouched: the remaining player can still be notified and the game
// can still be finalized.
func (f *Facade) Disconnect(id string) *Result {
	f.presence.Leave(id)
	f.invites.Remove(id)
	obslog.L().Info("player_leave", zap.String("player_id", id))
	return (&Result{}).broadcast(EvPlayerLeft, map[string]string{"id": id}, id)
}

// Invite stores a pending invite for inv.ToID and tells the recipient.
func (f *Facade) Invite(senderID string, inv domain.Invite) *Result {
	r := &Result{}
	sender := f.presence.Find(senderID)
	if sender == nil {
		return r.fail(senderID, "invite_player", domain.ErrNotFound)
	}
	inv.FromName = sender.Name
	saved, err := f.invites.Save(senderID, inv)
	if err != nil {
		return r.fail(senderID, "invite_player", err)
	}
	return r.toOne(saved.ToID, EvInviteIn, saved)
}

// AcceptInvite turns the caller's pending invite into a live game.
func (f *Facade) AcceptInvite(id string) *Result {
	r := &Result{}
	g, err := f.matches.Accept(id)
	if err != nil {
		return r.fail(id, "accept_invite", err)
	}
	snap := g.Snapshot()
	r.toMany([]string{g.White.ID, g.Black.ID}, EvGameStarted, snap)
	r.broadcast(EvGameStarted, snap, g.White.ID, g.Black.ID)
	return r
}

// RejectInvite removes the caller's pending invite and tells the
// original sender. With nothing pending it is a silent no-op.
func (f *Facade) RejectInvite(id string) *Result {
	r := &Result{}
	inv, err := f.matches.Reject(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r
		}
		return r.fail(id, "reject_invite", err)
	}
	return r.toOne(inv.FromID, EvInviteDenied, inv)
}

// Move applies a from-to move for the caller and fans out the outcome:
// the opponent hears applied moves, only the requester hears rejections,
// and a terminal move finalizes the game.
func (f *Facade) Move(ctx context.Context, id, from, to string) *Result {
	r := &Result{}
	res, g := f.matches.MakeMove(id, from, to)
	if g == nil {
		return r
	}
	movePayload := map[string]string{"from": from, "to": to}
	switch res {
	case match.ValidMove:
		if opp := f.matches.Opponent(id, true); opp != nil {
			r.toOne(opp.ID, EvMoveApplied, movePayload)
		}
	case match.EndGame:
		opp := f.matches.Opponent(id, true)
		f.finishGame(ctx, r, id, "make_move")
		if opp != nil {
			r.toOne(opp.ID, EvMoveApplied, movePayload)
		}
	default:
		r.toOne(id, EvInvalidMove, movePayload)
	}
	return r
}

// Resign marks the caller's color as resigned and finalizes.
func (f *Facade) Resign(ctx context.Context, id string) *Result {
	r := &Result{}
	if !f.matches.Resign(id) {
		return r
	}
	f.finishGame(ctx, r, id, "resign")
	return r
}

// OfferDraw sets the pending draw flag and tells the opponent.
func (f *Facade) OfferDraw(id string) *Result {
	r := &Result{}
	if !f.matches.OfferDraw(id) {
		return r
	}
	if opp := f.matches.Opponent(id, true); opp != nil {
		r.toOne(opp.ID, EvDrawOffered, map[string]string{"from": id})
	}
	return r
}

// AcceptDraw records the agreed draw and finalizes.
func (f *Facade) AcceptDraw(ctx context.Context, id string) *Result {
	r := &Result{}
	if !f.matches.AcceptDraw(id) {
		return r
	}
	f.finishGame(ctx, r, id, "accept_draw")
	return r
}

// RejectDraw clears the pending offer and signals the offering side.
func (f *Facade) RejectDraw(id string) *Result {
	r := &Result{}
	if !f.matches.RejectDraw(id) {
		return r
	}
	if opp := f.matches.Opponent(id, true); opp != nil {
		r.toOne(opp.ID, EvDrawRejected, map[string]string{"from": id})
	}
	return r
}

// CurrentGame answers a state resync request.
func (f *Facade) CurrentGame(id string) *Result {
	r := &Result{}
	if g := f.matches.Find(id); g != nil {
		return r.toOne(id, EvGameState, g.Snapshot())
	}
	return r.toOne(id, EvGameState, nil)
}

// Chat relays a lobby message to everyone else.
func (f *Facade) Chat(id, text string) *Result {
	r := &Result{}
	p := f.presence.Find(id)
	if p == nil {
		return r
	}
	return r.broadcast(EvChat, map[string]string{"from": p.ID, "name": p.Name, "text": text}, id)
}

// Players returns the online snapshot for the REST surface.
func (f *Facade) Players() []*domain.Player {
	return f.presence.FindAll()
}

// Statistic returns the (possibly seeded) per-type statistic.
func (f *Facade) Statistic(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	return f.matches.StatisticFor(ctx, playerID, t)
}

// finishGame runs finalization for the caller's game and appends the
// win/lose/draw notices. The reason delivered to both participants is
// the endgame classification.
func (f *Facade) finishGame(ctx context.Context, r *Result, id, op string) {
	g := f.matches.Find(id)
	if g == nil {
		return
	}
	whiteID, blackID := g.White.ID, g.Black.ID

	kind, ok, err := f.matches.Finalize(ctx, id)
	if err != nil {
		obslog.L().Error("finalize_error", zap.String("game_id", g.ID), zap.String("op", op), zap.Error(err))
		r.fail(id, op, err)
	}
	if !ok {
		return
	}

	reason := map[string]string{"reason": string(kind), "game_id": g.ID}
	if kind.Decisive() {
		loserID := whiteID
		if g.WinnerID == whiteID {
			loserID = blackID
		}
		r.toOne(g.WinnerID, EvGameWon, reason)
		r.toOne(loserID, EvGameLost, reason)
		return
	}
	r.toMany([]string{whiteID, blackID}, EvGameDrawn, reason)
}
