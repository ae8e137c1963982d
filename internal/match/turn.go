package match

import (
	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/obslog"
)

// MakeMove validates and applies a from-to move for playerID. Turn order
// and legality are checked as one step under the game lock; on failure
// the board is untouched and the result is InvalidMove. A successful
// move implicitly withdraws any pending draw offer.
func (m *Manager) MakeMove(playerID, from, to string) (MoveResult, *Game) {
	g := m.games.Find(playerID)
	if g == nil {
		return InvalidMove, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized {
		return InvalidMove, g
	}

	color, ok := g.ColorOf(playerID)
	if !ok || g.engine.SideToMove() != color || !g.engine.IsValidMove(from, to) {
		return InvalidMove, g
	}
	if err := g.engine.Move(from, to); err != nil {
		// IsValidMove passed, so a failure here means an engine bug
		obslog.L().Error("move_apply_error",
			zap.String("game_id", g.ID),
			zap.String("player_id", playerID),
			zap.String("from", from), zap.String("to", to),
			zap.Error(err),
		)
		return InvalidMove, g
	}
	g.drawOffered = false

	result := ValidMove
	if g.engine.IsEndGame() {
		result = EndGame
	}
	obslog.L().Info("move",
		zap.String("game_id", g.ID),
		zap.String("player_id", playerID),
		zap.String("from", from), zap.String("to", to),
		zap.String("result", result.String()),
	)
	return result, g
}

// Resign marks playerID's color as resigned on the board. It does not
// finalize; callers invoke Finalize afterward. Returns false when the
// player has no live game.
func (m *Manager) Resign(playerID string) bool {
	g := m.games.Find(playerID)
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized {
		return false
	}
	color, ok := g.ColorOf(playerID)
	if !ok {
		return false
	}
	g.engine.Resign(color)
	obslog.L().Info("resign", zap.String("game_id", g.ID), zap.String("player_id", playerID))
	return true
}

// OfferDraw sets the pending draw flag. It succeeds only when a live
// game and an online opponent exist, it is the offering player's turn,
// and no offer is already pending.
func (m *Manager) OfferDraw(playerID string) bool {
	g := m.games.Find(playerID)
	if g == nil || m.Opponent(playerID, true) == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized || g.drawOffered {
		return false
	}
	color, ok := g.ColorOf(playerID)
	if !ok || g.engine.SideToMove() != color {
		return false
	}
	g.drawOffered = true
	g.drawOfferedBy = color
	obslog.L().Info("draw_offer", zap.String("game_id", g.ID), zap.String("player_id", playerID))
	return true
}

// AcceptDraw records a drawn result when an offer is pending. The caller
// finalizes afterward.
func (m *Manager) AcceptDraw(playerID string) bool {
	g := m.games.Find(playerID)
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized || !g.drawOffered {
		return false
	}
	if err := g.engine.Draw(); err != nil {
		obslog.L().Error("draw_record_error", zap.String("game_id", g.ID), zap.Error(err))
		return false
	}
	g.drawOffered = false
	obslog.L().Info("draw_accept", zap.String("game_id", g.ID), zap.String("player_id", playerID))
	return true
}

// RejectDraw clears a pending offer so the offering side can be told.
func (m *Manager) RejectDraw(playerID string) bool {
	g := m.games.Find(playerID)
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized || !g.drawOffered {
		return false
	}
	g.drawOffered = false
	obslog.L().Info("draw_reject", zap.String("game_id", g.ID), zap.String("player_id", playerID))
	return true
}

// DrawOfferedBy reports the color holding a pending draw offer.
func (m *Manager) DrawOfferedBy(playerID string) (domain.Color, bool) {
	g := m.games.Find(playerID)
	if g == nil {
		return "", false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.drawOffered {
		return "", false
	}
	return g.drawOfferedBy, true
}
