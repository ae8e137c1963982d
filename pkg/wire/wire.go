// Package wire defines the JSON contract between the gateway and its
// clients. Clients send Commands over the socket; the server answers
// and fans out with Events.
package wire

import "time"

// Command ops accepted over the socket.
const (
	OpInvite       = "invite"
	OpAcceptInvite = "accept_invite"
	OpRejectInvite = "reject_invite"
	OpMove         = "move"
	OpResign       = "resign"
	OpOfferDraw    = "offer_draw"
	OpAcceptDraw   = "accept_draw"
	OpRejectDraw   = "reject_draw"
	OpGameState    = "game_state"
	OpChat         = "chat"
)

// Command is one client request. Fields beyond Op are op-specific and
// left zero otherwise.
type Command struct {
	Op string `json:"op"`

	// invite
	To               string `json:"to,omitempty"`
	Color            string `json:"color,omitempty"`
	BaseSeconds      int    `json:"base_seconds,omitempty"`
	IncrementSeconds int    `json:"increment_seconds,omitempty"`
	GameType         int    `json:"game_type,omitempty"`

	// move
	From string `json:"from,omitempty"`
	Dest string `json:"dest,omitempty"`

	// chat
	Text string `json:"text,omitempty"`
}

// Event is one server-to-client message.
type Event struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LoginRequest is the REST login body.
type LoginRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// LoginResponse carries the bearer token for the socket handshake.
type LoginResponse struct {
	Token string `json:"token"`
}
