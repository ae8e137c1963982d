package store

import (
	"context"
	"time"

	"github.com/park285/chess-arena/internal/domain"
)

// GameRecord is the durable shape of a finished game.
type GameRecord struct {
	ID               string
	WhiteID          string
	WhiteName        string
	BlackID          string
	BlackName        string
	Type             domain.GameType
	BaseSeconds      int
	IncrementSeconds int
	Endgame          domain.EndgameType
	WinnerID         string // empty on draws
	PGN              string
	StartedAt        time.Time
	EndedAt          time.Time
}

// Store persists finished games and statistics. Lookups that find
// nothing return (nil, nil); statistics for first-time participants are
// seeded by the caller.
type Store interface {
	AddFinishedGame(ctx context.Context, rec *GameRecord) error
	UpdateStatistic(ctx context.Context, st *domain.Statistic) error
	GetStatistic(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error)
	Close() error
}
