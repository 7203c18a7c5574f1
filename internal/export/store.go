package export

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

const (
	// quicktag rows are keyed by (url, subsong, fieldname). Play counts
	// use the whole-file subsong and a dedicated field name.
	subsongAll         = "-1"
	playCountFieldName = "LASTFM_PLAYCOUNT_DB"
)

// Store persists play-count rows in a SQLite quicktag database.
//
// All writes go through a single transaction held open for the whole
// import. Nothing is visible to other readers until Commit; Close
// without Commit discards every pending write.
type Store struct {
	db        *sql.DB
	tx        *sql.Tx
	committed bool
	closed    bool
}

// OpenStore opens (or creates) the quicktag database at path and begins
// the import transaction.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: database path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer; also keeps in-memory databases on one connection.
	db.SetMaxOpenConns(1)

	// The database usually belongs to a running music player, so leave
	// the journal mode alone and just wait out short-lived locks.
	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// Players that already own this file have created the table; a fresh
	// target database gets the same shape.
	schema := `
		CREATE TABLE IF NOT EXISTS quicktag (
			url TEXT NOT NULL,
			subsong TEXT NOT NULL,
			fieldname TEXT NOT NULL,
			value TEXT,
			PRIMARY KEY (url, subsong, fieldname)
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &Store{db: db, tx: tx}, nil
}

// Upsert writes one play-count row for the given fingerprint key,
// replacing any existing row for that key.
func (s *Store) Upsert(ctx context.Context, key uint32, playCount int) error {
	query := `
		INSERT OR REPLACE INTO quicktag (url, subsong, fieldname, value)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.tx.ExecContext(ctx, query,
		formatKey(key),
		subsongAll,
		playCountFieldName,
		strconv.Itoa(playCount),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert play count: %w", err)
	}

	return nil
}

// Lookup returns the stored play-count value for a fingerprint key.
// Reads through the open transaction, so pending writes are visible.
func (s *Store) Lookup(ctx context.Context, key uint32) (string, bool, error) {
	query := `
		SELECT value FROM quicktag
		WHERE url = ? AND subsong = ? AND fieldname = ?
	`

	var value string
	err := s.tx.QueryRowContext(ctx, query,
		formatKey(key),
		subsongAll,
		playCountFieldName,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up play count: %w", err)
	}

	return value, true, nil
}

// Count returns the number of play-count rows visible to the open
// transaction.
func (s *Store) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM quicktag WHERE fieldname = ?`

	var count int
	if err := s.tx.QueryRowContext(ctx, query, playCountFieldName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count play counts: %w", err)
	}

	return count, nil
}

// formatKey renders a fingerprint key the way it is stored in the url
// column: as an unsigned decimal string.
func formatKey(key uint32) string {
	return strconv.FormatUint(uint64(key), 10)
}

// Commit makes all pending writes durable.
func (s *Store) Commit() error {
	if s.committed {
		return nil
	}
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.committed = true
	return nil
}

// Close releases the database handle. If Commit has not been called,
// pending writes are rolled back. Safe to call more than once.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if !s.committed {
		_ = s.tx.Rollback()
	}
	return s.db.Close()
}
