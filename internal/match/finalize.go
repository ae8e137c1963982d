package match

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/rating"
	"github.com/park285/chess-arena/internal/store"
)

// Finalize moves playerID's game from live to historical: stamps the end
// time, resolves the winner, renders the PGN, updates both ratings
// exactly once, persists the record, and removes the game from the live
// registry. When the player has no live game or the board is not
// terminal it returns ok=false and does nothing, so redundant calls are
// safe. It runs under the same per-game lock as moves, so two racing
// triggers cannot both bill.
func (m *Manager) Finalize(ctx context.Context, playerID string) (domain.EndgameType, bool, error) {
	g := m.games.Find(playerID)
	if g == nil {
		return "", false, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized || !g.engine.IsEndGame() {
		return "", false, nil
	}
	// From here on the game is settled; storage faults are reported but
	// never re-run the billing.
	g.finalized = true
	g.EndedAt = time.Now()

	kind, winColor, _ := g.engine.EndGame()
	if kind.Decisive() {
		if winColor == domain.White {
			g.WinnerID = g.White.ID
		} else {
			g.WinnerID = g.Black.ID
		}
	}
	g.PGN = g.engine.ToPGN()

	err := m.settle(ctx, g, kind)

	m.games.Remove(g)
	obslog.L().Info("game_end",
		zap.String("game_id", g.ID),
		zap.String("endgame", string(kind)),
		zap.String("winner_id", g.WinnerID),
		zap.Int("plies", g.engine.MoveCount()),
	)
	return kind, true, err
}

// settle applies rating updates from pre-update snapshots and persists
// statistics plus the finished game.
func (m *Manager) settle(ctx context.Context, g *Game, kind domain.EndgameType) error {
	white, err := m.statisticFor(ctx, g.White.ID, g.Type)
	if err != nil {
		return err
	}
	black, err := m.statisticFor(ctx, g.Black.ID, g.Type)
	if err != nil {
		return err
	}

	var whiteWon rating.Result
	if kind.Decisive() {
		v := g.WinnerID == g.White.ID
		whiteWon = &v
	}
	m.ratings.ApplyGameResult(white, black, whiteWon)

	if err := m.store.UpdateStatistic(ctx, white); err != nil {
		return err
	}
	if err := m.store.UpdateStatistic(ctx, black); err != nil {
		return err
	}
	rec := &store.GameRecord{
		ID:               g.ID,
		WhiteID:          g.White.ID,
		WhiteName:        g.White.Name,
		BlackID:          g.Black.ID,
		BlackName:        g.Black.Name,
		Type:             g.Type,
		BaseSeconds:      g.BaseSeconds,
		IncrementSeconds: g.IncrementSeconds,
		Endgame:          kind,
		WinnerID:         g.WinnerID,
		PGN:              g.PGN,
		StartedAt:        g.StartedAt,
		EndedAt:          g.EndedAt,
	}
	return m.store.AddFinishedGame(ctx, rec)
}

// statisticFor loads or seeds the per-type statistic for a participant.
func (m *Manager) statisticFor(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	st, err := m.store.GetStatistic(ctx, playerID, t)
	if err != nil {
		return nil, err
	}
	if st == nil {
		now := time.Now()
		st = &domain.Statistic{
			PlayerID:  playerID,
			Type:      t,
			Rating:    rating.DefaultRating,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return st, nil
}

// StatisticFor exposes the seeded statistic lookup for read paths.
func (m *Manager) StatisticFor(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	return m.statisticFor(ctx, playerID, t)
}
