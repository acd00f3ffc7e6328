// Package store persists aggregation round records to a local SQLite file.
// The log is observability storage only: the engine runs identically with
// no recorder attached, and the in-memory result cache is separate.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/tripdeck/travelsearch/internal/engine"
)

// SearchLog records aggregation rounds using modernc.org/sqlite.
type SearchLog struct {
	db *sql.DB
}

// NewSearchLog opens a SQLite database at the given path and configures
// WAL mode.
func NewSearchLog(dsn string) (*SearchLog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "searchlog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "searchlog: exec %s", pragma)
		}
	}
	return &SearchLog{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS rounds (
	id         TEXT PRIMARY KEY,
	domain     TEXT NOT NULL,
	cache_key  TEXT NOT NULL,
	cache_hit  INTEGER NOT NULL DEFAULT 0,
	items      INTEGER NOT NULL DEFAULT 0,
	elapsed_ms INTEGER NOT NULL DEFAULT 0,
	outcomes   TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_rounds_domain ON rounds(domain);
CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at);
`

// Migrate creates the schema if missing.
func (s *SearchLog) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "searchlog: migrate")
}

// Close releases the database handle.
func (s *SearchLog) Close() error {
	return s.db.Close()
}

// RecordRound implements engine.Recorder.
func (s *SearchLog) RecordRound(ctx context.Context, rec engine.RoundRecord) error {
	outcomes, err := json.Marshal(rec.Outcomes)
	if err != nil {
		return eris.Wrap(err, "searchlog: marshal outcomes")
	}

	hit := 0
	if rec.CacheHit {
		hit = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rounds (id, domain, cache_key, cache_hit, items, elapsed_ms, outcomes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Domain, rec.CacheKey, hit, rec.Items,
		rec.Elapsed.Milliseconds(), string(outcomes), time.Now().UTC(),
	)
	return eris.Wrap(err, "searchlog: insert round")
}

// RoundEntry is one logged round read back from the store.
type RoundEntry struct {
	ID        string           `json:"id"`
	Domain    string           `json:"domain"`
	CacheKey  string           `json:"cache_key"`
	CacheHit  bool             `json:"cache_hit"`
	Items     int              `json:"items"`
	ElapsedMS int64            `json:"elapsed_ms"`
	Outcomes  []engine.Outcome `json:"outcomes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ListRounds returns the most recent rounds, newest first. An empty domain
// matches all domains.
func (s *SearchLog) ListRounds(ctx context.Context, domain string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, domain, cache_key, cache_hit, items, elapsed_ms, outcomes, created_at
		FROM rounds`
	args := []any{}
	if domain != "" {
		query += ` WHERE domain = ?`
		args = append(args, domain)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "searchlog: list rounds")
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var (
			e        RoundEntry
			hit      int
			outcomes sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Domain, &e.CacheKey, &hit, &e.Items, &e.ElapsedMS, &outcomes, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "searchlog: scan round")
		}
		e.CacheHit = hit != 0
		if outcomes.Valid && outcomes.String != "" {
			if err := json.Unmarshal([]byte(outcomes.String), &e.Outcomes); err != nil {
				return nil, eris.Wrap(err, "searchlog: unmarshal outcomes")
			}
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "searchlog: iterate rounds")
}
