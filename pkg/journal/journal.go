// Package journal keeps an append-only SQLite record of applied
// navigation intents, for diagnostics and session reconstruction.
package journal

import (
	cryptorand "crypto/rand"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	navErr "github.com/odvcencio/navkit/pkg/errors"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS nav_journal (
	id          TEXT PRIMARY KEY,
	navigator   TEXT NOT NULL,
	op          TEXT NOT NULL,
	from_kind   TEXT NOT NULL DEFAULT '',
	to_kind     TEXT NOT NULL DEFAULT '',
	node_key    TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_nav_journal_navigator
	ON nav_journal(navigator, recorded_at);
`

// Entry is one recorded intent.
type Entry struct {
	ID         string
	Navigator  string
	Op         string
	FromKind   string
	ToKind     string
	NodeKey    string
	RecordedAt time.Time
}

// Journal records intents for one navigator into a SQLite database.
// Safe for concurrent use.
type Journal struct {
	db        *sql.DB
	navigator string

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// Open creates or opens the journal database at dbPath. WAL mode keeps
// reads cheap while the navigator writes.
func Open(dbPath, navigatorID string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, navErr.Wrap(err, navErr.ErrCodeJournalOpen, "failed to create journal directory")
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeJournalOpen, "failed to open journal database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, navErr.Wrap(err, navErr.ErrCodeJournalOpen, "failed to configure journal database")
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, navErr.Wrap(err, navErr.ErrCodeJournalOpen, "failed to initialize journal schema")
	}

	return &Journal{
		db:        db,
		navigator: navigatorID,
		entropy:   ulid.Monotonic(cryptorand.Reader, 0),
	}, nil
}

// RecordIntent appends one row. Implements navigator.IntentRecorder.
func (j *Journal) RecordIntent(op, fromKind, toKind, nodeKey string) error {
	_, err := j.db.Exec(
		`INSERT INTO nav_journal (id, navigator, op, from_kind, to_kind, node_key, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.newID(), j.navigator, op, fromKind, toKind, nodeKey, time.Now().UTC(),
	)
	if err != nil {
		return navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to record intent").
			WithContext("op", op)
	}
	return nil
}

// Recent returns the latest entries for this journal's navigator,
// newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(
		`SELECT id, navigator, op, from_kind, to_kind, node_key, recorded_at
		 FROM nav_journal
		 WHERE navigator = ?
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT ?`,
		j.navigator, limit,
	)
	if err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to query journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Navigator, &e.Op, &e.FromKind, &e.ToKind, &e.NodeKey, &e.RecordedAt); err != nil {
			return nil, navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to scan journal row")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to iterate journal rows")
	}
	return entries, nil
}

// CountByOp returns how many entries each op has for this navigator.
func (j *Journal) CountByOp() (map[string]int, error) {
	rows, err := j.db.Query(
		`SELECT op, COUNT(*) FROM nav_journal WHERE navigator = ? GROUP BY op`,
		j.navigator,
	)
	if err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to query journal counts")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var op string
		var count int
		if err := rows.Scan(&op, &count); err != nil {
			return nil, navErr.Wrap(err, navErr.ErrCodeJournalWrite, "failed to scan journal count")
		}
		counts[op] = count
	}
	return counts, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// newID issues a monotonic ULID so rows sort in insertion order even
// within one timestamp.
func (j *Journal) newID() string {
	j.entropyMu.Lock()
	defer j.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), j.entropy).String()
}
