package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/chess-arena/internal/domain"
)

type pgstore struct {
	db *sql.DB
}

// NewPostgresStore opens a pooled connection to the given DATABASE_URL
// and verifies it with a short ping.
func NewPostgresStore(databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &pgstore{db: db}, nil
}

func (s *pgstore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddFinishedGame upserts a final game record. Finalize may only run
// once per game, but the upsert keeps a crash-retry from failing on the
// primary key.
func (s *pgstore) AddFinishedGame(ctx context.Context, rec *GameRecord) error {
	if rec == nil {
		return domain.ErrInvalidArgs
	}
	duration := rec.EndedAt.Sub(rec.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	q := `INSERT INTO games (
	    game_id, white_id, white_name, black_id, black_name,
	    game_type, base_seconds, increment_seconds,
	    endgame, winner_id, pgn,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    endgame=EXCLUDED.endgame,
	    winner_id=EXCLUDED.winner_id,
	    pgn=EXCLUDED.pgn,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := s.db.ExecContext(ctx, q,
		rec.ID,
		rec.WhiteID, rec.WhiteName,
		rec.BlackID, rec.BlackName,
		int(rec.Type), rec.BaseSeconds, rec.IncrementSeconds,
		string(rec.Endgame), nullIfEmpty(rec.WinnerID), rec.PGN,
		rec.StartedAt, rec.EndedAt, duration,
	)
	return err
}

func (s *pgstore) UpdateStatistic(ctx context.Context, st *domain.Statistic) error {
	if st == nil {
		return domain.ErrInvalidArgs
	}
	q := `INSERT INTO statistics (
	    player_id, game_type, games_played, wins, losses, draws, rating,
	    created_at, updated_at
	  ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	  ON CONFLICT (player_id, game_type) DO UPDATE SET
	    games_played=EXCLUDED.games_played,
	    wins=EXCLUDED.wins,
	    losses=EXCLUDED.losses,
	    draws=EXCLUDED.draws,
	    rating=EXCLUDED.rating,
	    updated_at=NOW()`

	_, err := s.db.ExecContext(ctx, q,
		st.PlayerID, int(st.Type),
		st.GamesPlayed, st.Wins, st.Losses, st.Draws, st.Rating,
	)
	return err
}

func (s *pgstore) GetStatistic(ctx context.Context, playerID string, t domain.GameType) (*domain.Statistic, error) {
	q := `SELECT games_played, wins, losses, draws, rating, created_at, updated_at
	  FROM statistics WHERE player_id=$1 AND game_type=$2`

	st := &domain.Statistic{PlayerID: playerID, Type: t}
	err := s.db.QueryRowContext(ctx, q, playerID, int(t)).Scan(
		&st.GamesPlayed, &st.Wins, &st.Losses, &st.Draws, &st.Rating,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
