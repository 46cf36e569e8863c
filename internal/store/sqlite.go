// ABOUTME: SQLite backend for the credential store using modernc.org/sqlite
// ABOUTME: Loads an ordered snapshot at startup; writes are admin-only, out of band

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// SQLiteStore holds credentials in a SQLite database. The auth core never
// touches it directly: the service loads an immutable Credentials snapshot
// once at startup. The write methods exist for the admin CLI.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) a credential database at path.
// Parent directories are created if needed.
func OpenSQLite(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("credential store opened", "path", path)
	return s, nil
}

// createSchema creates the users table if it doesn't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			secret TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns an immutable snapshot of all credentials, ordered by insert
// order (rowid). The snapshot is what the auth core iterates, so insert
// order decides tie-breaks exactly like file declaration order does.
func (s *SQLiteStore) Load(ctx context.Context) (*Credentials, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT username, secret FROM users ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	defer rows.Close()

	var entries []Credential
	for rows.Next() {
		var c Credential
		if err := rows.Scan(&c.Username, &c.Secret); err != nil {
			return nil, fmt.Errorf("scanning credential: %w", err)
		}
		entries = append(entries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	return New(entries)
}

// SetSecret creates or replaces the secret for username.
func (s *SQLiteStore) SetSecret(ctx context.Context, username, secret string) error {
	if username == "" {
		return fmt.Errorf("empty username")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, secret, created_at) VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET secret = excluded.secret
	`, username, secret, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing secret for %s: %w", username, err)
	}
	return nil
}

// DeleteUser removes username from the store.
func (s *SQLiteStore) DeleteUser(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", username, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
