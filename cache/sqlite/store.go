// Package sqlite provides a SQLite-backed translation cache that survives
// restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the default cache database name inside the data directory.
const FileName = "cache.db"

const schema = `CREATE TABLE IF NOT EXISTS translations (
	source_text     TEXT NOT NULL,
	target_lang     TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	updated_at      INTEGER NOT NULL,
	PRIMARY KEY (source_text, target_lang)
)`

// Store persists translations in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the stored translation of text into lang.
func (s *Store) Get(ctx context.Context, text, lang string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	var translated string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT translated_text FROM translations WHERE source_text = ? AND target_lang = ?`,
		text, lang,
	).Scan(&translated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get translation: %w", err)
	}
	return translated, true, nil
}

// Put upserts a translation.
func (s *Store) Put(ctx context.Context, text, lang, translated string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO translations (source_text, target_lang, translated_text, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_text, target_lang) DO UPDATE SET
		   translated_text = excluded.translated_text,
		   updated_at = excluded.updated_at`,
		text, lang, translated, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put translation: %w", err)
	}
	return nil
}

// Count returns the number of stored translations, per language when lang
// is non-empty.
func (s *Store) Count(ctx context.Context, lang string) (int, error) {
	query := `SELECT COUNT(*) FROM translations`
	args := []any{}
	if lang != "" {
		query += ` WHERE target_lang = ?`
		args = append(args, lang)
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

// Purge deletes stored translations, for one language when lang is
// non-empty. It returns the number of rows removed.
func (s *Store) Purge(ctx context.Context, lang string) (int64, error) {
	query := `DELETE FROM translations`
	args := []any{}
	if lang != "" {
		query += ` WHERE target_lang = ?`
		args = append(args, lang)
	}
	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge translations: %w", err)
	}
	return res.RowsAffected()
}
