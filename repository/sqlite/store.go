// Package sqlite persists datasets into a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"churnsynth/events"
	"churnsynth/service"

	_ "modernc.org/sqlite"
)

// Store provides a SQLite-backed dataset store
type Store struct {
	sqlDB *sql.DB
	path  string
}

func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Open opens or creates the SQLite database at path and applies pending migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	if err := runMigrations(cleanPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dsn(cleanPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; a single connection keeps pragmas consistent
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &Store{sqlDB: sqlDB, path: cleanPath}, nil
}

// Close closes the underlying SQLite database
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// NewUnitOfWorkFactory creates units of work over this store
func (s *Store) NewUnitOfWorkFactory(eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: s.sqlDB, eventBus: eventBus}
}

// GenerationRuns returns a run repository outside any transaction
func (s *Store) GenerationRuns() service.GenerationRunRepository {
	return &generationRunRepository{q: s.sqlDB}
}

// queryable is satisfied by both *sql.DB and *sql.Tx
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
