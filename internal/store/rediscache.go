package store

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/obslog"
)

const statCacheTTL = 6 * time.Hour

// cachedStore layers a Redis read-through cache for statistics over a
// backing Store. Finished games pass straight through; statistic reads
// hit Redis first and writes go through to both.
type cachedStore struct {
	next Store
	rdb  *redis.Client
}

// NewRedisCache connects to redisURL and wraps next. Cache faults are
// logged and degrade to the backing store, never surfaced.
func NewRedisCache(redisURL string, next Store) (Store, error) {
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &cachedStore{next: next, rdb: rdb}, nil
}

func (c *cachedStore) Close() error {
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	return c.next.Close()
}

func (c *cachedStore) AddFinishedGame(ctx context.Context, rec *GameRecord) error {
	return c.next.AddFinishedGame(ctx, rec)
}

func (c *cachedStore) UpdateStatistic(ctx context.Context, st *domain.Statistic) error {
	if err := c.next.UpdateStatistic(ctx, st); err != nil {
		return err
	}
	raw, err := json.Marshal(st)
	if err == nil {
		if cerr := c.rdb.Set(ctx, cacheKey(st.PlayerID, st.Type), raw, statCacheTTL).Err(); cerr != nil {
			obslog.L().Warn("stat_cache_set_error", zap.String("player_id", st.PlayerID), zap.Error(cerr))
		}
	}
	return nil
}

func (c *cachedStore) GetStatistic(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(playerID, t)).Bytes()
	if err == nil {
		var st domain.Statistic
		if jerr := json.Unmarshal(raw, &st); jerr == nil {
			return &st, nil
		}
	} else if err != redis.Nil {
		obslog.L().Warn("stat_cache_get_error", zap.String("player_id", playerID), zap.Error(err))
	}

	st, err := c.next.GetStatistic(ctx, playerID, t)
	if err != nil || st == nil {
		return st, err
	}
	if raw, jerr := json.Marshal(st); jerr == nil {
		_ = c.rdb.Set(ctx, cacheKey(playerID, t), raw, statCacheTTL).Err()
	}
	return st, nil
}

func cacheKey(playerID string, t domain.GameType) string {
	return "arena:stat:" + strings.TrimSpace(playerID) + ":" + t.String()
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, domain.ErrInvalidArgs
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
