// Package storage provides the local SQLite cache of card and set data, and
// a cards.Lookup implementation that fills it from an inner lookup.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
	path string
}

// Config holds database configuration settings.
type Config struct {
	// Path is the file path to the SQLite database.
	// Use ":memory:" for an in-memory database (useful for testing).
	Path string

	// MaxOpenConns sets the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// BusyTimeout sets how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// AutoMigrate runs pending schema migrations on Open.
	AutoMigrate bool
}

// DefaultConfig returns sensible defaults with the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:         path,
		MaxOpenConns: 10,
		BusyTimeout:  5 * time.Second,
		AutoMigrate:  true,
	}
}

// Open opens (and optionally migrates) the cache database.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage: empty database path")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 10
	}
	// An in-memory database exists per connection; the pool must not
	// open a second one.
	if cfg.Path == ":memory:" {
		cfg.MaxOpenConns = 1
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{conn: conn, path: cfg.Path}
	if cfg.AutoMigrate {
		var err error
		if cfg.Path == ":memory:" {
			err = migrateConn(conn)
		} else {
			err = Migrate(cfg.Path)
		}
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return db, nil
}

// Conn exposes the underlying connection for queries.
func (db *DB) Conn() *sql.DB { return db.conn }

// Close closes the database connection.
func (db *DB) Close() error { return db.conn.Close() }
