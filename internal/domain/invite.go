package domain

import "time"

// Invite is a pending challenge from one player to another. The color is
// the one the sender wants for themselves; the recipient gets the inverse.
type Invite struct {
	ID               string    `json:"id"`
	FromID           string    `json:"from_id"`
	FromName         string    `json:"from_name"`
	ToID             string    `json:"to_id"`
	FromColor        Color     `json:"from_color"`
	BaseSeconds      int       `json:"base_seconds"`
	IncrementSeconds int       `json:"increment_seconds"`
	Type             GameType  `json:"type"`
	CreatedAt        time.Time `json:"created_at"`
}
