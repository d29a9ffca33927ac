// Package store implements the on-device cache: a durable SQLite mirror of
// remote user data (profile, preferences, saved articles) that stays
// readable and writable without network access.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/citoyen-eclaire/appcore/migrations"
)

// timeLayout is a fixed-width millisecond UTC format (the JS toISOString
// shape). Fixed width keeps lexicographic TEXT comparison in SQL equal to
// chronological comparison, which the retention sweep relies on.
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Store owns the on-device SQLite file. All access is same-process; writes
// are synchronous with respect to the caller.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the cache database at path and applies pending
// migrations. Migration is idempotent and never drops existing rows, so
// Open is safe to call on every process start.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// Single on-device file, single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	log.Debug("cache db ready", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// ClearUserData removes the mirrored profile and preference rows for a
// user. Used on sign-out; cached articles are handled by the clear-cache
// action.
func (s *Store) ClearUserData(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_profile WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("clear user profile: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("clear user preferences: %w", err)
	}
	return nil
}
