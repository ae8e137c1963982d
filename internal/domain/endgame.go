package domain

import "strings"

// Color identifies a chess side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// ParseColor maps loose user input to a Color, defaulting to white.
func ParseColor(s string) Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black
	default:
		return White
	}
}

// EndgameType classifies how a finished game ended. Produced by the board
// engine, consumed to pick the winner and the rating delta direction.
type EndgameType string

const (
	Checkmate            EndgameType = "checkmate"
	Resigned             EndgameType = "resigned"
	DrawDeclared         EndgameType = "draw_declared"
	Stalemate            EndgameType = "stalemate"
	FiftyMoveRule        EndgameType = "fifty_move_rule"
	InsufficientMaterial EndgameType = "insufficient_material"
	Repetition           EndgameType = "repetition"
)

// Decisive reports whether the classification has a winner.
func (t EndgameType) Decisive() bool {
	return t == Checkmate || t == Resigned
}
