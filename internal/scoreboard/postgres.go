package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore shares one scoreboard across server processes.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scoreboard database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping scoreboard database: %w", err)
	}

	// goose needs database/sql; give it its own short-lived handle.
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer db.Close()

	if err := migrate(ctx, db, goose.DialectPostgres, "postgres"); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}

	query := `
		INSERT INTO scoreboard_entries (room_code, completed_at, base_cards, entry_data)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.pool.Exec(ctx, query, entry.RoomCode, entry.CompletedAt, entry.BaseCards, string(data)); err != nil {
		return fmt.Errorf("failed to save entry for room %s: %w", entry.RoomCode, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `SELECT entry_data FROM scoreboard_entries ORDER BY id ASC`)
}

func (s *PostgresStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	return s.query(ctx, `SELECT entry_data FROM scoreboard_entries ORDER BY id DESC LIMIT $1`, n)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoreboard: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan scoreboard row: %w", err)
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to deserialize entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoreboard rows: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
