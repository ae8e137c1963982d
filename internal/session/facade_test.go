package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/invite"
	"github.com/park285/chess-arena/internal/match"
	"github.com/park285/chess-arena/internal/presence"
	"github.com/park285/chess-arena/internal/rating"
	"github.com/park285/chess-arena/internal/store"
)

func newFacade(t *testing.T) (*Facade, store.Store) {
	t.Helper()
	pres := presence.NewRegistry()
	invites := invite.NewRegistry()
	st := store.NewMemoryStore()
	matches := match.NewManager(match.NewRegistry(), invites, pres, rating.NewEngine(), st)
	return NewFacade(pres, invites, matches), st
}

func findNotice(r *Result, event string) *Notice {
	for i := range r.Notices {
		if r.Notices[i].Event == event {
			return &r.Notices[i]
		}
	}
	return nil
}

func TestConnectDisconnectNotices(t *testing.T) {
	f, _ := newFacade(t)

	r := f.Connect("a", "ann")
	list := findNotice(r, EvPlayersList)
	require.NotNil(t, list)
	assert.Equal(t, []string{"a"}, list.To)

	joined := findNotice(r, EvPlayerJoined)
	require.NotNil(t, joined)
	assert.True(t, joined.Broadcast)
	assert.Contains(t, joined.Exclude, "a")

	r = f.Disconnect("a")
	left := findNotice(r, EvPlayerLeft)
	require.NotNil(t, left)
	assert.True(t, left.Broadcast)
}

func TestInviteFlowNotices(t *testing.T) {
	f, _ := newFacade(t)
	f.Connect("a", "ann")
	f.Connect("b", "bob")

	r := f.Invite("a", domain.Invite{ToID: "b", FromColor: domain.White, BaseSeconds: 600, Type: domain.TypeRapid})
	in := findNotice(r, EvInviteIn)
	require.NotNil(t, in)
	assert.Equal(t, []string{"b"}, in.To)

	r = f.AcceptInvite("b")
	started := findNotice(r, EvGameStarted)
	require.NotNil(t, started)
	assert.ElementsMatch(t, []string{"a", "b"}, started.To)

	snap, ok := started.Payload.(match.Snapshot)
	require.True(t, ok)
	assert.Equal(t, "a", snap.WhiteID)
	assert.Equal(t, "b", snap.BlackID)
	assert.Equal(t, 600, snap.BaseSeconds)
}

func TestRejectInviteNotifiesSender(t *testing.T) {
	f, _ := newFacade(t)
	f.Connect("a", "ann")
	f.Connect("b", "bob")
	f.Invite("a", domain.Invite{ToID: "b", FromColor: domain.White})

	r := f.RejectInvite("b")
	denied := findNotice(r, EvInviteDenied)
	require.NotNil(t, denied)
	assert.Equal(t, []string{"a"}, denied.To)

	// nothing pending anymore: silent no-op
	r = f.RejectInvite("b")
	assert.Empty(t, r.Notices)
	assert.NoError(t, r.Err)
}

func TestErrorNoticeIsRequesterOnly(t *testing.T) {
	f, _ := newFacade(t)
	f.Connect("b", "bob")

	r := f.AcceptInvite("b")
	require.Error(t, r.Err)
	errNotice := findNotice(r, EvError)
	require.NotNil(t, errNotice)
	assert.Equal(t, []string{"b"}, errNotice.To)
	assert.False(t, errNotice.Broadcast)
	assert.Equal(t, map[string]string{"op": "accept_invite"}, errNotice.Payload)
}

func startGame(t *testing.T, f *Facade) {
	t.Helper()
	f.Connect("a", "ann")
	f.Connect("b", "bob")
	f.Invite("a", domain.Invite{ToID: "b", FromColor: domain.White, Type: domain.TypeRapid})
	r := f.AcceptInvite("b")
	require.NotNil(t, findNotice(r, EvGameStarted))
}

func TestMoveNotices(t *testing.T) {
	f, _ := newFacade(t)
	startGame(t, f)
	ctx := context.Background()

	r := f.Move(ctx, "a", "e2", "e4")
	applied := findNotice(r, EvMoveApplied)
	require.NotNil(t, applied)
	assert.Equal(t, []string{"b"}, applied.To)

	// wrong turn: requester-only rejection
	r = f.Move(ctx, "a", "d2", "d4")
	invalid := findNotice(r, EvInvalidMove)
	require.NotNil(t, invalid)
	assert.Equal(t, []string{"a"}, invalid.To)
	assert.Nil(t, findNotice(r, EvMoveApplied))
}

func TestCheckmateScenario(t *testing.T) {
	f, st := newFacade(t)
	startGame(t, f)
	ctx := context.Background()

	moves := [][3]string{
		{"a", "e2", "e4"}, {"b", "e7", "e5"},
		{"a", "f1", "c4"}, {"b", "b8", "c6"},
		{"a", "d1", "h5"}, {"b", "g8", "f6"},
	}
	for _, mv := range moves {
		r := f.Move(ctx, mv[0], mv[1], mv[2])
		require.NotNil(t, findNotice(r, EvMoveApplied), "move %v", mv)
	}

	r := f.Move(ctx, "a", "h5", "f7")
	won := findNotice(r, EvGameWon)
	lost := findNotice(r, EvGameLost)
	require.NotNil(t, won)
	require.NotNil(t, lost)
	assert.Equal(t, []string{"a"}, won.To)
	assert.Equal(t, []string{"b"}, lost.To)
	assert.Equal(t, string(domain.Checkmate), won.Payload.(map[string]string)["reason"])

	aStat, err := st.GetStatistic(ctx, "a", domain.TypeRapid)
	require.NoError(t, err)
	bStat, err := st.GetStatistic(ctx, "b", domain.TypeRapid)
	require.NoError(t, err)
	assert.Greater(t, aStat.Rating, 1500)
	assert.Less(t, bStat.Rating, 1500)

	// game gone from the live registry
	state := findNotice(f.CurrentGame("b"), EvGameState)
	require.NotNil(t, state)
	assert.Nil(t, state.Payload)
}

func TestDrawFlowNotices(t *testing.T) {
	f, _ := newFacade(t)
	startGame(t, f)
	ctx := context.Background()

	// out-of-turn offer: nothing happens
	r := f.OfferDraw("b")
	assert.Empty(t, r.Notices)

	r = f.OfferDraw("a")
	offered := findNotice(r, EvDrawOffered)
	require.NotNil(t, offered)
	assert.Equal(t, []string{"b"}, offered.To)

	r = f.AcceptDraw(ctx, "b")
	drawn := findNotice(r, EvGameDrawn)
	require.NotNil(t, drawn)
	assert.ElementsMatch(t, []string{"a", "b"}, drawn.To)
	assert.Equal(t, string(domain.DrawDeclared), drawn.Payload.(map[string]string)["reason"])
}

func TestResignScenario(t *testing.T) {
	f, _ := newFacade(t)
	startGame(t, f)

	r := f.Resign(context.Background(), "b")
	won := findNotice(r, EvGameWon)
	lost := findNotice(r, EvGameLost)
	require.NotNil(t, won)
	require.NotNil(t, lost)
	assert.Equal(t, []string{"a"}, won.To)
	assert.Equal(t, []string{"b"}, lost.To)
	assert.Equal(t, string(domain.Resigned), lost.Payload.(map[string]string)["reason"])
}

func TestDisconnectMidGameKeepsGame(t *testing.T) {
	f, _ := newFacade(t)
	startGame(t, f)

	f.Disconnect("a")

	// a's presence is gone, but b's game is still resolvable
	for _, p := range f.Players() {
		assert.NotEqual(t, "a", p.ID)
	}
	state := findNotice(f.CurrentGame("b"), EvGameState)
	require.NotNil(t, state)
	require.NotNil(t, state.Payload)
	snap := state.Payload.(match.Snapshot)
	assert.Equal(t, "a", snap.WhiteID)

	// reconnect resyncs the live game
	r := f.Connect("a", "ann")
	require.NotNil(t, findNotice(r, EvGameState))
}

func TestReconnectRenameDuringOpponentResync(t *testing.T) {
	f, _ := newFacade(t)
	startGame(t, f)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			f.Connect("a", fmt.Sprintf("ann-%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			state := findNotice(f.CurrentGame("b"), EvGameState)
			if state == nil || state.Payload == nil {
				t.Error("live game lost during reconnect churn")
				return
			}
		}
	}()
	wg.Wait()

	// the game still carries the name from when it started
	snap := findNotice(f.CurrentGame("b"), EvGameState).Payload.(match.Snapshot)
	assert.Equal(t, "ann", snap.WhiteName)
}
