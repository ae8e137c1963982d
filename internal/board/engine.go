package board

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/park285/chess-arena/internal/domain"
)

// Engine wraps a github.com/corentings/chess/v2 game behind the narrow
// contract the session core consumes: legality checks, move application,
// terminal classification, PGN rendering, resignation and agreed draws.
// It is not safe for concurrent use; callers serialize access per game.
type Engine struct {
	game *nchess.Game
}

func NewEngine() *Engine {
	return &Engine{game: nchess.NewGame()}
}

// SideToMove returns the color whose turn it is.
func (e *Engine) SideToMove() domain.Color {
	return colorFrom(e.game.Position().Turn())
}

// IsValidMove reports whether from-to is legal in the current position.
// The board is left untouched.
func (e *Engine) IsValidMove(from, to string) bool {
	_, err := e.decode(from, to)
	return err == nil
}

// Move applies from-to to the board. Callers are expected to have
// validated the move; an error here means it was not legal after all.
func (e *Engine) Move(from, to string) error {
	mv, err := e.decode(from, to)
	if err != nil {
		return err
	}
	return e.game.Move(mv, nil)
}

// IsEndGame reports whether the position is terminal.
func (e *Engine) IsEndGame() bool {
	return e.game.Outcome() != nchess.NoOutcome
}

// EndGame returns the classification and winning color of a terminal
// position. ok is false while the game is still in progress. For drawn
// classifications the returned color is meaningless.
func (e *Engine) EndGame() (domain.EndgameType, domain.Color, bool) {
	outcome := e.game.Outcome()
	if outcome == nchess.NoOutcome {
		return "", domain.White, false
	}
	var winner domain.Color
	if outcome == nchess.WhiteWon {
		winner = domain.White
	} else {
		winner = domain.Black
	}
	return endgameFrom(e.game.Method()), winner, true
}

// Resign records a resignation by the given color.
func (e *Engine) Resign(c domain.Color) {
	if c == domain.White {
		e.game.Resign(nchess.White)
		return
	}
	e.game.Resign(nchess.Black)
}

// Draw records a draw by agreement.
func (e *Engine) Draw() error {
	return e.game.Draw(nchess.DrawOffer)
}

// ToPGN renders the full move history with result.
func (e *Engine) ToPGN() string {
	return strings.TrimSpace(e.game.String())
}

// FEN returns the current position for state resync.
func (e *Engine) FEN() string {
	return e.game.FEN()
}

// MoveCount returns the number of plies played so far.
func (e *Engine) MoveCount() int {
	return len(e.game.Moves())
}

// decode resolves from-to squares into a legal move for the current
// position. Promotions default to a queen, matching the square-pair
// contract the transport exposes.
func (e *Engine) decode(from, to string) (*nchess.Move, error) {
	pos := e.game.Position()
	uci := strings.ToLower(strings.TrimSpace(from) + strings.TrimSpace(to))
	if len(uci) != 4 {
		return nil, fmt.Errorf("malformed squares %q-%q", from, to)
	}
	notation := nchess.UCINotation{}
	if mv, err := notation.Decode(pos, uci); err == nil {
		return mv, nil
	}
	mv, err := notation.Decode(pos, uci+"q")
	if err != nil {
		return nil, fmt.Errorf("illegal move %s: %w", uci, err)
	}
	return mv, nil
}

func colorFrom(c nchess.Color) domain.Color {
	if c == nchess.White {
		return domain.White
	}
	return domain.Black
}

func endgameFrom(m nchess.Method) domain.EndgameType {
	switch m {
	case nchess.Checkmate:
		return domain.Checkmate
	case nchess.Resignation:
		return domain.Resigned
	case nchess.DrawOffer:
		return domain.DrawDeclared
	case nchess.Stalemate:
		return domain.Stalemate
	case nchess.ThreefoldRepetition, nchess.FivefoldRepetition:
		return domain.Repetition
	case nchess.FiftyMoveRule, nchess.SeventyFiveMoveRule:
		return domain.FiftyMoveRule
	case nchess.InsufficientMaterial:
		return domain.InsufficientMaterial
	default:
		return domain.DrawDeclared
	}
}
