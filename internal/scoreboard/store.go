package scoreboard

import (
	"context"
	"fmt"
	"time"

	"judgment-server/internal/config"
	"judgment-server/internal/judgment"
)

type PlayerResult struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	TotalScore  int    `json:"total_score"`
	CorrectBids int    `json:"correct_bids"`
}

// Entry summarizes one finished game. Entries are written once and never changed.
type Entry struct {
	RoomCode     string         `json:"room_code"`
	CompletedAt  time.Time      `json:"completed_at"`
	BaseCards    int            `json:"base_cards"`
	Players      []PlayerResult `json:"players"`
	ScoreWinners []string       `json:"score_winners"`
	GuessWinners []string       `json:"guess_winners"`
	MegaWinners  []string       `json:"mega_winners"`
}

// NewEntry builds the entry for a finished game, stamped to the second in UTC.
func NewEntry(roomCode string, baseCards int, players []*judgment.Player, standings judgment.Standings, completedAt time.Time) Entry {
	results := make([]PlayerResult, 0, len(players))
	for _, p := range players {
		results = append(results, PlayerResult{
			PlayerID:    p.ID,
			Name:        p.Name,
			TotalScore:  p.TotalScore,
			CorrectBids: p.CorrectBids,
		})
	}
	return Entry{
		RoomCode:     roomCode,
		CompletedAt:  completedAt.UTC().Truncate(time.Second),
		BaseCards:    baseCards,
		Players:      results,
		ScoreWinners: standings.ScoreWinners,
		GuessWinners: standings.GuessWinners,
		MegaWinners:  standings.MegaWinners,
	}
}

// Store is an append-only history of finished games.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	// List returns every entry in append order.
	List(ctx context.Context) ([]Entry, error)
	// Recent returns at most n entries, newest first.
	Recent(ctx context.Context, n int) ([]Entry, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the store selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ScoreboardBackend {
	case config.BackendFile:
		return OpenFile(cfg.ScoreboardPath)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported scoreboard backend: %s", cfg.ScoreboardBackend)
	}
}

func newest(entries []Entry, n int) []Entry {
	n = max(0, min(n, len(entries)))
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}
