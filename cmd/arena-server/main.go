package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/auth"
	"github.com/park285/chess-arena/internal/config"
	"github.com/park285/chess-arena/internal/gateway"
	"github.com/park285/chess-arena/internal/invite"
	"github.com/park285/chess-arena/internal/match"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/presence"
	"github.com/park285/chess-arena/internal/rating"
	"github.com/park285/chess-arena/internal/session"
	"github.com/park285/chess-arena/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogFile); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()

	st := buildStore(cfg)
	defer st.Close()

	pres := presence.NewRegistry()
	invites := invite.NewRegistry()
	matches := match.NewManager(match.NewRegistry(), invites, pres, rating.NewEngine(), st)
	facade := session.NewFacade(pres, invites, matches)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	hub := gateway.NewHub()

	wsSrv := &http.Server{
		Addr:              cfg.WSAddr,
		Handler:           gateway.NewServer(facade, hub, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}
	api := gateway.NewAPI(facade, hub, tokens)

	go func() {
		obslog.L().Info("ws_listen", zap.String("addr", cfg.WSAddr))
		if err := wsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obslog.L().Fatal("ws_server_failed", zap.Error(err))
		}
	}()
	go func() {
		if err := api.ListenAndServe(cfg.APIAddr); err != nil {
			obslog.L().Fatal("api_server_failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	obslog.L().Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = wsSrv.Shutdown(ctx)
	_ = api.Shutdown(ctx)
}

// buildStore picks postgres when DATABASE_URL is set, otherwise the
// in-memory store, and layers the redis cache on top when configured.
func buildStore(cfg *config.Config) store.Store {
	var st store.Store
	if cfg.DatabaseURL != "" {
		ps, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres init error: %v", err)
		}
		st = ps
	} else {
		obslog.L().Warn("no DATABASE_URL set, results are kept in memory only")
		st = store.NewMemoryStore()
	}
	if cfg.RedisURL != "" {
		cs, err := store.NewRedisCache(cfg.RedisURL, st)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		st = cs
	}
	return st
}
