package rating

import (
	"testing"

	"github.com/park285/chess-arena/internal/domain"
)

func stat(rating int) *domain.Statistic {
	return &domain.Statistic{PlayerID: "p", Type: domain.TypeRapid, Rating: rating}
}

func TestEqualRatingsWin(t *testing.T) {
	e := NewEngine()
	a, b := stat(1500), stat(1500)
	e.ApplyGameResult(a, b, Win())

	if a.Rating != 1516 || b.Rating != 1484 {
		t.Fatalf("ratings = %d / %d, want 1516 / 1484", a.Rating, b.Rating)
	}
	if a.Wins != 1 || b.Losses != 1 || a.GamesPlayed != 1 || b.GamesPlayed != 1 {
		t.Fatalf("tallies wrong: %+v %+v", a, b)
	}
}

func TestRatingSymmetry(t *testing.T) {
	e := NewEngine()
	a, b := stat(1500), stat(1500)
	e.ApplyGameResult(a, b, Win())
	if gained, lost := a.Rating-1500, 1500-b.Rating; gained != lost {
		t.Fatalf("asymmetric update: +%d / -%d", gained, lost)
	}
}

func TestDrawBetweenEqualsIsNeutral(t *testing.T) {
	e := NewEngine()
	a, b := stat(1500), stat(1500)
	e.ApplyGameResult(a, b, Draw())
	if a.Rating != 1500 || b.Rating != 1500 {
		t.Fatalf("draw moved equal ratings: %d / %d", a.Rating, b.Rating)
	}
	if a.Draws != 1 || b.Draws != 1 {
		t.Fatalf("draw not tallied: %+v %+v", a, b)
	}
}

func TestMonotonicity(t *testing.T) {
	e := NewEngine()
	for _, ratings := range [][2]int{{1500, 1500}, {1200, 1800}, {1800, 1200}, {2400, 900}} {
		a, b := stat(ratings[0]), stat(ratings[1])
		e.ApplyGameResult(a, b, Win())
		if a.Rating < ratings[0] {
			t.Fatalf("winner lost rating: %d -> %d", ratings[0], a.Rating)
		}
		if b.Rating > ratings[1] {
			t.Fatalf("loser gained rating: %d -> %d", ratings[1], b.Rating)
		}
	}
}

func TestOrderIndependence(t *testing.T) {
	e := NewEngine()
	// Underdog beats favorite; both updates must use pre-update ratings.
	a, b := stat(1200), stat(1800)
	e.ApplyGameResult(a, b, Win())

	// Expected score for the 1200 player is ~0.031, so the winner gains
	// round(32 * 0.969) = 31 points and the loser gives up the same.
	if a.Rating != 1231 {
		t.Fatalf("underdog rating = %d, want 1231", a.Rating)
	}
	if b.Rating != 1769 {
		t.Fatalf("favorite rating = %d, want 1769", b.Rating)
	}
}
