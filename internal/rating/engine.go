package rating

import (
	"math"
	"time"

	"github.com/park285/chess-arena/internal/domain"
)

const (
	// DefaultRating seeds a first-time participant's statistic.
	DefaultRating = 1500
	kFactor       = 32
)

// Engine computes Elo-style rating updates. Stateless; one instance is
// shared by all finalizations.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Result is the outcome of a game from one participant's perspective.
// A nil pointer means draw.
type Result *bool

func Win() Result  { v := true; return &v }
func Loss() Result { v := false; return &v }
func Draw() Result { return nil }

// UpdateStatistic applies one finished game to a statistic: increments
// games played and exactly one of wins/losses/draws, then moves the
// rating by K times the actual-vs-expected score margin. The caller must
// pass the opponent's pre-update rating so the order of the two
// participants' updates cannot affect either result.
func (e *Engine) UpdateStatistic(st *domain.Statistic, opponentRating int, isWinner Result) *domain.Statistic {
	var score float64
	st.GamesPlayed++
	switch {
	case isWinner == nil:
		st.Draws++
		score = 0.5
	case *isWinner:
		st.Wins++
		score = 1.0
	default:
		st.Losses++
		score = 0.0
	}

	expected := 1.0 / (1.0 + math.Pow(10, float64(opponentRating-st.Rating)/400.0))
	st.Rating = int(math.Round(float64(st.Rating) + kFactor*(score-expected)))
	st.UpdatedAt = time.Now()
	return st
}

// ApplyGameResult updates both participants' statistics from their
// pre-update ratings. winner is nil for draws, otherwise true when white
// won.
func (e *Engine) ApplyGameResult(white, black *domain.Statistic, whiteWon Result) {
	// Snapshot both ratings before either update so ordering cannot
	// change the outcome.
	whiteBefore := white.Rating
	blackBefore := black.Rating

	var blackWon Result
	if whiteWon != nil {
		v := !*whiteWon
		blackWon = &v
	}
	e.UpdateStatistic(white, blackBefore, whiteWon)
	e.UpdateStatistic(black, whiteBefore, blackWon)
}
