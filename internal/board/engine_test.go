package board

import (
	"strings"
	"testing"

	"github.com/park285/chess-arena/internal/domain"
)

// scholarsMate delivers the four-move checkmate by white.
var scholarsMate = [][2]string{
	{"e2", "e4"}, {"e7", "e5"},
	{"f1", "c4"}, {"b8", "c6"},
	{"d1", "h5"}, {"g8", "f6"},
	{"h5", "f7"},
}

func playAll(t *testing.T, e *Engine, moves [][2]string) {
	t.Helper()
	for _, mv := range moves {
		if !e.IsValidMove(mv[0], mv[1]) {
			t.Fatalf("move %s-%s rejected as illegal", mv[0], mv[1])
		}
		if err := e.Move(mv[0], mv[1]); err != nil {
			t.Fatalf("apply %s-%s: %v", mv[0], mv[1], err)
		}
	}
}

func TestEngine_TurnAlternation(t *testing.T) {
	e := NewEngine()
	if got := e.SideToMove(); got != domain.White {
		t.Fatalf("initial side to move = %s", got)
	}
	if err := e.Move("e2", "e4"); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if got := e.SideToMove(); got != domain.Black {
		t.Fatalf("side to move after e4 = %s", got)
	}
}

func TestEngine_IllegalMoveLeavesBoard(t *testing.T) {
	e := NewEngine()
	if e.IsValidMove("e2", "e5") {
		t.Fatal("e2-e5 reported legal")
	}
	if err := e.Move("e2", "e5"); err == nil {
		t.Fatal("applying illegal move did not error")
	}
	if e.MoveCount() != 0 {
		t.Fatalf("board mutated by rejected move, plies=%d", e.MoveCount())
	}
}

func TestEngine_CheckmateClassification(t *testing.T) {
	e := NewEngine()
	playAll(t, e, scholarsMate)

	if !e.IsEndGame() {
		t.Fatal("mate position not reported terminal")
	}
	kind, winner, ok := e.EndGame()
	if !ok || kind != domain.Checkmate || winner != domain.White {
		t.Fatalf("EndGame = (%s, %s, %v), want checkmate by white", kind, winner, ok)
	}
	pgn := e.ToPGN()
	if !strings.Contains(pgn, "1-0") {
		t.Fatalf("PGN missing white win marker: %q", pgn)
	}
}

func TestEngine_ResignationClassification(t *testing.T) {
	e := NewEngine()
	if err := e.Move("e2", "e4"); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	e.Resign(domain.Black)

	kind, winner, ok := e.EndGame()
	if !ok || kind != domain.Resigned || winner != domain.White {
		t.Fatalf("EndGame = (%s, %s, %v), want resignation won by white", kind, winner, ok)
	}
}

func TestEngine_AgreedDraw(t *testing.T) {
	e := NewEngine()
	if err := e.Move("e2", "e4"); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if err := e.Draw(); err != nil {
		t.Fatalf("draw by agreement: %v", err)
	}
	kind, _, ok := e.EndGame()
	if !ok || kind != domain.DrawDeclared {
		t.Fatalf("EndGame = (%s, %v), want declared draw", kind, ok)
	}
}
