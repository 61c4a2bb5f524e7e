package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"carrel/internal/config"
)

// Store manages workspace persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the workspace database, acquires the
// single-process lock, and applies schema migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("%w: ensure directories: %v", ErrUnavailable, err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire store lock: %v", ErrUnavailable, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s is held by another process", ErrUnavailable, cfg.LockPath())
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: open sqlite db: %v", ErrUnavailable, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("%w: apply pragma %q: %v", ErrUnavailable, pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.applySchemaMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}
