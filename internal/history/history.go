// Package history keeps the play history in a local SQLite database so
// playback can be resumed and recently watched videos picked again.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"streamable/internal/media"
)

const schema = `CREATE TABLE IF NOT EXISTS plays (
	shortcode TEXT PRIMARY KEY,
	title     TEXT NOT NULL,
	url       TEXT NOT NULL,
	position  REAL NOT NULL DEFAULT 0,
	duration  REAL NOT NULL DEFAULT 0,
	played_at INTEGER NOT NULL
)`

// ErrNotFound is returned by Get when the shortcode has no entry.
var ErrNotFound = errors.New("history entry not found")

// Store is a play history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the entry or replaces the existing one for the same shortcode.
// A zero PlayedAt is stamped with the current time.
func (s *Store) Save(ctx context.Context, entry media.HistoryEntry) error {
	if entry.Shortcode == "" {
		return errors.New("history entry has no shortcode")
	}
	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO plays (shortcode, title, url, position, duration, played_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(shortcode) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			position = excluded.position,
			duration = excluded.duration,
			played_at = excluded.played_at`,
		entry.Shortcode, entry.Title, entry.URL, entry.Position, entry.Duration, entry.PlayedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving history entry %s: %w", entry.Shortcode, err)
	}
	return nil
}

// List returns every entry, most recently played first.
func (s *Store) List(ctx context.Context) ([]media.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT shortcode, title, url, position, duration, played_at
		FROM plays ORDER BY played_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("reading history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// Get returns the entry for shortcode, or ErrNotFound.
func (s *Store) Get(ctx context.Context, shortcode string) (media.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT shortcode, title, url, position, duration, played_at
		FROM plays WHERE shortcode = ?`, shortcode)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return media.HistoryEntry{}, ErrNotFound
	}
	if err != nil {
		return media.HistoryEntry{}, fmt.Errorf("reading history entry %s: %w", shortcode, err)
	}
	return e, nil
}

// Remove deletes the entry for shortcode. Removing a missing entry is not an error.
func (s *Store) Remove(ctx context.Context, shortcode string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plays WHERE shortcode = ?`, shortcode); err != nil {
		return fmt.Errorf("removing history entry %s: %w", shortcode, err)
	}
	return nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plays`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (media.HistoryEntry, error) {
	var (
		e        media.HistoryEntry
		playedAt int64
	)
	if err := row.Scan(&e.Shortcode, &e.Title, &e.URL, &e.Position, &e.Duration, &playedAt); err != nil {
		return media.HistoryEntry{}, err
	}
	e.PlayedAt = time.Unix(0, playedAt)
	return e, nil
}

// FormatForDisplay creates picker labels from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.Title
		if display == "" {
			display = e.Shortcode
		}
		if e.Position > 0 {
			pct := 0.0
			if e.Duration > 0 {
				pct = (e.Position / e.Duration) * 100
			}
			display += fmt.Sprintf(" [%.0f%%]", pct)
		}
		items = append(items, display)
	}
	return items
}
