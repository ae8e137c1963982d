package domain

import "time"

// Player is a connected identity. Presence entries are connection-scoped;
// the identity and its statistics outlive the connection.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// GameType selects which statistic bucket a game counts toward.
type GameType int

const (
	TypeBullet GameType = iota + 1
	TypeBlitz
	TypeRapid
	TypeClassical
)

func (t GameType) String() string {
	switch t {
	case TypeBullet:
		return "bullet"
	case TypeBlitz:
		return "blitz"
	case TypeRapid:
		return "rapid"
	case TypeClassical:
		return "classical"
	default:
		return "unknown"
	}
}

// Statistic is the per (player, game type) aggregate. It is mutated
// exactly once per finished game, never mid-game.
type Statistic struct {
	PlayerID    string    `json:"player_id"`
	Type        GameType  `json:"type"`
	GamesPlayed int       `json:"games_played"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
