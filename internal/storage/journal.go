// Package storage persists the session's event stream in SQLite. The
// journal is append-only; the replayer reads it back to reconstruct a
// session offline.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/dorive/FiggieMachine/internal/event"
)

// EventJournal handles persistent storage of stream events in SQLite.
type EventJournal struct {
	db *sql.DB
}

// NewEventJournal opens (or creates) a journal with WAL mode enabled.
func NewEventJournal(dbPath string) (*EventJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA cache_size=-2000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	// KV table for session metadata (player name, run id, table paths).
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			ts INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create events table: %w", err)
	}

	return &EventJournal{db: db}, nil
}

// Append stores one event.
func (j *EventJournal) Append(ctx context.Context, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = j.db.ExecContext(ctx,
		"INSERT INTO events (seq, kind, ts, payload) VALUES (?, ?, ?, ?)",
		ev.GetSeq(), uint16(ev.GetKind()), ev.GetTs(), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// UpsertMetadata saves a key-value pair to the metadata table.
func (j *EventJournal) UpsertMetadata(ctx context.Context, key, value string, ts int64) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, ts,
	)
	return err
}

// GetMetadata retrieves a value from the metadata table. A missing key
// reads as the empty string.
func (j *EventJournal) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := j.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Count returns the number of journaled events.
func (j *EventJournal) Count(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// LoadAll reads every journaled event back in insertion order.
func (j *EventJournal) LoadAll(ctx context.Context) ([]event.Event, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, kind, payload FROM events ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var id int64
		var kind uint16
		var payload []byte
		if err := rows.Scan(&id, &kind, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		ev, err := decodeEvent(event.Kind(kind), payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode event %d: %w", id, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return events, nil
}

func decodeEvent(kind event.Kind, payload []byte) (event.Event, error) {
	switch kind {
	case event.KindDealt:
		var ev event.DealtEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case event.KindUpdate:
		var ev event.UpdateEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case event.KindEndRound:
		var ev event.EndRoundEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case event.KindEndGame:
		var ev event.EndGameEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("unknown event kind %d", kind)
	}
}

// Close closes the database connection.
func (j *EventJournal) Close() error {
	return j.db.Close()
}
