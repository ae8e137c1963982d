package match

import (
	"sync"
	"time"

	"github.com/park285/chess-arena/internal/board"
	"github.com/park285/chess-arena/internal/domain"
)

// MoveResult is the outcome of a MakeMove call.
type MoveResult int

const (
	InvalidMove MoveResult = iota
	ValidMove
	EndGame
)

func (r MoveResult) String() string {
	switch r {
	case ValidMove:
		return "valid_move"
	case EndGame:
		return "end_game"
	default:
		return "invalid_move"
	}
}

// Game is a live session between two players. All board access and the
// draw-offer flag are guarded by mu; move, resign, draw and finalize all
// run under it so only one caller ever observes "terminal and not yet
// finalized".
type Game struct {
	ID               string
	White            *domain.Player
	Black            *domain.Player
	Type             domain.GameType
	BaseSeconds      int
	IncrementSeconds int
	StartedAt        time.Time

	mu            sync.Mutex
	engine        *board.Engine
	drawOffered   bool
	drawOfferedBy domain.Color
	finalized     bool

	// set by Finalize
	EndedAt  time.Time
	WinnerID string
	PGN      string
}

// ColorOf returns the color assigned to playerID in this game.
func (g *Game) ColorOf(playerID string) (domain.Color, bool) {
	switch playerID {
	case g.White.ID:
		return domain.White, true
	case g.Black.ID:
		return domain.Black, true
	default:
		return "", false
	}
}

// OpponentOf returns the other participant, or nil when playerID is not
// in the game.
func (g *Game) OpponentOf(playerID string) *domain.Player {
	switch playerID {
	case g.White.ID:
		return g.Black
	case g.Black.ID:
		return g.White
	default:
		return nil
	}
}

// Snapshot is a consistent view of a live game for state resync.
type Snapshot struct {
	ID               string          `json:"id"`
	WhiteID          string          `json:"white_id"`
	WhiteName        string          `json:"white_name"`
	BlackID          string          `json:"black_id"`
	BlackName        string          `json:"black_name"`
	Type             domain.GameType `json:"type"`
	BaseSeconds      int             `json:"base_seconds"`
	IncrementSeconds int             `json:"increment_seconds"`
	FEN              string          `json:"fen"`
	SideToMove       domain.Color    `json:"side_to_move"`
	MoveCount        int             `json:"move_count"`
	DrawOffered      bool            `json:"draw_offered"`
	StartedAt        time.Time       `json:"started_at"`
}

// Snapshot captures the game state under the game lock.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:               g.ID,
		WhiteID:          g.White.ID,
		WhiteName:        g.White.Name,
		BlackID:          g.Black.ID,
		BlackName:        g.Black.Name,
		Type:             g.Type,
		BaseSeconds:      g.BaseSeconds,
		IncrementSeconds: g.IncrementSeconds,
		FEN:              g.engine.FEN(),
		SideToMove:       g.engine.SideToMove(),
		MoveCount:        g.engine.MoveCount(),
		DrawOffered:      g.drawOffered,
		StartedAt:        g.StartedAt,
	}
}
