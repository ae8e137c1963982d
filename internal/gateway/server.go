package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chess-arena/internal/auth"
	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/session"
	"github.com/park285/chess-arena/pkg/wire"
)

// Server accepts websocket sessions, authenticates them, and shuttles
// commands into the facade and notices back out through the hub.
type Server struct {
	facade *session.Facade
	hub    *Hub
	tokens *auth.TokenManager

	readLimit int64
}

func NewServer(facade *session.Facade, hub *Hub, tokens *auth.TokenManager) *Server {
	return &Server{facade: facade, hub: hub, tokens: tokens, readLimit: 16 << 10}
}

// ServeHTTP upgrades /ws requests. The bearer token rides either the
// Authorization header or the token query parameter.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := s.authenticate(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		obslog.L().Warn("ws_accept_failed", zap.Error(err))
		return
	}
	c.SetReadLimit(s.readLimit)

	s.serve(r.Context(), c, claims.Subject, claims.Name)
}

func (s *Server) authenticate(r *http.Request) (*auth.Claims, error) {
	raw := r.URL.Query().Get("token")
	if h := r.Header.Get("Authorization"); h != "" {
		raw = strings.TrimPrefix(h, "Bearer ")
	}
	if raw == "" {
		return nil, errors.New("missing token")
	}
	return s.tokens.Validate(raw)
}

func (s *Server) serve(ctx context.Context, c *websocket.Conn, playerID, name string) {
	cn := &conn{playerID: playerID, send: make(chan wire.Event, sendBuffer)}
	s.hub.attach(cn)
	s.hub.Deliver(s.facade.Connect(playerID, name).Notices)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.writePump(ctx, c, cn)

	for {
		var cmd wire.Command
		if err := wsjson.Read(ctx, c, &cmd); err != nil {
			break
		}
		s.hub.Deliver(s.dispatch(ctx, playerID, cmd).Notices)
	}

	// a replacement connection keeps the player online; only the last
	// socket standing clears presence
	if s.hub.detach(cn) {
		s.hub.Deliver(s.facade.Disconnect(playerID).Notices)
	}
	_ = c.Close(websocket.StatusNormalClosure, "bye")
}

func (s *Server) writePump(ctx context.Context, c *websocket.Conn, cn *conn) {
	for ev := range cn.send {
		wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := wsjson.Write(wctx, c, ev)
		cancel()
		if err != nil {
			_ = c.Close(websocket.StatusGoingAway, "write failure")
			return
		}
	}
	_ = c.Close(websocket.StatusGoingAway, "replaced")
}

func (s *Server) dispatch(ctx context.Context, playerID string, cmd wire.Command) *session.Result {
	switch cmd.Op {
	case wire.OpInvite:
		gt := domain.GameType(cmd.GameType)
		if gt.String() == "unknown" {
			gt = domain.TypeRapid
		}
		return s.facade.Invite(playerID, domain.Invite{
			ToID:             cmd.To,
			FromColor:        domain.ParseColor(cmd.Color),
			BaseSeconds:      cmd.BaseSeconds,
			IncrementSeconds: cmd.IncrementSeconds,
			Type:             gt,
		})
	case wire.OpAcceptInvite:
		return s.facade.AcceptInvite(playerID)
	case wire.OpRejectInvite:
		return s.facade.RejectInvite(playerID)
	case wire.OpMove:
		return s.facade.Move(ctx, playerID, cmd.From, cmd.Dest)
	case wire.OpResign:
		return s.facade.Resign(ctx, playerID)
	case wire.OpOfferDraw:
		return s.facade.OfferDraw(playerID)
	case wire.OpAcceptDraw:
		return s.facade.AcceptDraw(ctx, playerID)
	case wire.OpRejectDraw:
		return s.facade.RejectDraw(playerID)
	case wire.OpGameState:
		return s.facade.CurrentGame(playerID)
	case wire.OpChat:
		return s.facade.Chat(playerID, cmd.Text)
	default:
		obslog.L().Warn("unknown_op", zap.String("player_id", playerID), zap.String("op", cmd.Op))
		return &session.Result{}
	}
}
