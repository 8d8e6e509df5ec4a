package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// SaveSet inserts or refreshes a set in the cache.
func (db *DB) SaveSet(ctx context.Context, info cards.SetInfo) error {
	var released *string
	if !info.ReleasedAt.IsZero() {
		r := info.ReleasedAt.Format("2006-01-02")
		released = &r
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sets (code, name, set_type, released_at, cached_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			set_type = excluded.set_type,
			released_at = excluded.released_at,
			cached_at = CURRENT_TIMESTAMP
	`, strings.ToLower(info.Code), info.Name, info.SetType, released)
	if err != nil {
		return fmt.Errorf("save set %q: %w", info.Code, err)
	}
	return nil
}

// Sets returns every cached set.
func (db *DB) Sets(ctx context.Context) ([]cards.SetInfo, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT code, name, set_type, released_at FROM sets ORDER BY released_at")
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sets []cards.SetInfo
	for rows.Next() {
		var (
			info     cards.SetInfo
			released sql.NullString
		)
		if err := rows.Scan(&info.Code, &info.Name, &info.SetType, &released); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		if released.Valid {
			if t, err := time.Parse("2006-01-02", released.String); err == nil {
				info.ReleasedAt = t
			}
		}
		sets = append(sets, info)
	}
	return sets, rows.Err()
}

// LoadSetRegistry feeds every cached set into the in-process set registry so
// deck analytics see sets fetched on previous runs.
func (db *DB) LoadSetRegistry(ctx context.Context) error {
	sets, err := db.Sets(ctx)
	if err != nil {
		return err
	}
	for _, info := range sets {
		cards.RegisterSet(info)
	}
	return nil
}
