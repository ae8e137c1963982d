package gateway

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/auth"
	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/session"
	"github.com/park285/chess-arena/pkg/wire"
)

// API is the REST sidecar next to the socket: login, health, and the
// read-only views a lobby page needs.
type API struct {
	facade *session.Facade
	hub    *Hub
	tokens *auth.TokenManager
	srv    *fasthttp.Server
}

func NewAPI(facade *session.Facade, hub *Hub, tokens *auth.TokenManager) *API {
	a := &API{facade: facade, hub: hub, tokens: tokens}
	a.srv = &fasthttp.Server{
		Handler:      a.route,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Name:         "chess-arena",
	}
	return a
}

func (a *API) ListenAndServe(addr string) error {
	obslog.L().Info("api_listen", zap.String("addr", addr))
	return a.srv.ListenAndServe(addr)
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.srv.ShutdownWithContext(ctx)
}

func (a *API) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch {
	case path == "/healthz":
		a.health(ctx)
	case path == "/api/login" && ctx.IsPost():
		a.login(ctx)
	case path == "/api/players" && ctx.IsGet():
		a.players(ctx)
	case strings.HasPrefix(path, "/api/stats/") && ctx.IsGet():
		a.stats(ctx, strings.TrimPrefix(path, "/api/stats/"))
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func (a *API) health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status": "ok",
		"online": a.hub.Online(),
	})
}

func (a *API) login(ctx *fasthttp.RequestCtx) {
	var req wire.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.Error("bad request", fasthttp.StatusBadRequest)
		return
	}
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.PlayerID == "" || req.Name == "" {
		ctx.Error("player_id and name are required", fasthttp.StatusBadRequest)
		return
	}
	token, err := a.tokens.Issue(req.PlayerID, req.Name)
	if err != nil {
		obslog.L().Error("token_issue_failed", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, wire.LoginResponse{Token: token})
}

func (a *API) players(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, a.facade.Players())
}

// stats serves /api/stats/<player_id>?type=<n>. Type defaults to rapid.
func (a *API) stats(ctx *fasthttp.RequestCtx, playerID string) {
	gt := domain.TypeRapid
	if raw := string(ctx.QueryArgs().Peek("type")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || domain.GameType(n).String() == "unknown" {
			ctx.Error("bad game type", fasthttp.StatusBadRequest)
			return
		}
		gt = domain.GameType(n)
	}
	st, err := a.facade.Statistic(ctx, playerID, gt)
	if err != nil {
		obslog.L().Error("stats_read_failed", zap.String("player_id", playerID), zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, st)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(body)
}
