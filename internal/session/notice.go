package session

// Event names delivered to clients. The core never performs delivery; it
// returns Notices and the transport resolves identities to connections.
const (
	EvPlayersList  = "players_list"
	EvPlayerJoined = "player_joined"
	EvPlayerLeft   = "player_left"
	EvInviteIn     = "invite_received"
	EvInviteDenied = "invite_rejected"
	EvGameStarted  = "game_started"
	EvMoveApplied  = "move_applied"
	EvInvalidMove  = "invalid_move"
	EvDrawOffered  = "draw_offer_received"
	EvDrawRejected = "draw_offer_rejected"
	EvGameWon      = "game_won"
	EvGameLost     = "game_lost"
	EvGameDrawn    = "game_drawn"
	EvGameState    = "game_state"
	EvChat         = "chat"
	EvError        = "error"
)

// Notice is one delivery intent: an event, its payload, and who should
// hear it. Broadcast notices go to every connection except Exclude.
type Notice struct {
	Event     string
	To        []string
	Broadcast bool
	Exclude   []string
	Payload   any
}

// Result is what a facade operation hands back to the transport layer.
// Err is the underlying fault for logging; every user-visible outcome,
// including errors, is already expressed as a Notice.
type Result struct {
	Notices []Notice
	Err     error
}

func (r *Result) add(n Notice) *Result {
	r.Notices = append(r.Notices, n)
	return r
}

func (r *Result) toOne(id, event string, payload any) *Result {
	return r.add(Notice{Event: event, To: []string{id}, Payload: payload})
}

func (r *Result) toMany(ids []string, event string, payload any) *Result {
	return r.add(Notice{Event: event, To: ids, Payload: payload})
}

func (r *Result) broadcast(event string, payload any, exclude ...string) *Result {
	return r.add(Notice{Event: event, Broadcast: true, Exclude: exclude, Payload: payload})
}

// fail records the fault and emits the requester-only tagged error
// notice; errors are never broadcast.
func (r *Result) fail(id, op string, err error) *Result {
	r.Err = err
	return r.toOne(id, EvError, map[string]string{"op": op})
}
