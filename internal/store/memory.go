package store

import (
	"context"
	"sync"

	"github.com/park285/chess-arena/internal/domain"
)

// memstore is a development-only in-memory Store used when no database
// is configured, and by tests.
type memstore struct {
	mu sync.RWMutex

	games map[string]*GameRecord
	stats map[string]*domain.Statistic // playerID|type -> statistic
}

func NewMemoryStore() Store {
	return &memstore{
		games: make(map[string]*GameRecord),
		stats: make(map[string]*domain.Statistic),
	}
}

func (m *memstore) AddFinishedGame(ctx context.Context, rec *GameRecord) error {
	if rec == nil {
		return domain.ErrInvalidArgs
	}
	m.mu.Lock()
	cp := *rec
	m.games[rec.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *memstore) UpdateStatistic(ctx context.Context, st *domain.Statistic) error {
	if st == nil {
		return domain.ErrInvalidArgs
	}
	m.mu.Lock()
	cp := *st
	m.stats[statKey(st.PlayerID, st.Type)] = &cp
	m.mu.Unlock()
	return nil
}

func (m *memstore) GetStatistic(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.stats[statKey(playerID, t)]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (m *memstore) Close() error { return nil }

// FinishedGames returns a snapshot of stored records, for tests.
func FinishedGames(s Store) []*GameRecord {
	m, ok := s.(*memstore)
	if !ok {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*GameRecord, 0, len(m.games))
	for _, g := range m.games {
		cp := *g
		out = append(out, &cp)
	}
	return out
}

func statKey(playerID string, t domain.GameType) string {
	return playerID + "|" + t.String()
}
