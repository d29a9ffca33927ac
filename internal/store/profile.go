package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

// PutProfile upserts the local mirror of a user profile. The write is a
// full replace by id; callers merge fields before calling.
func (s *Store) PutProfile(ctx context.Context, p model.UserProfile) error {
	const q = `
INSERT OR REPLACE INTO user_profile (id, email, full_name, preferred_language, updated_at)
VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		p.ID.String(), p.Email, toNullString(p.FullName),
		string(p.PreferredLanguage), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// GetProfile returns the mirrored profile, or errs.ErrNotFound when the
// row is absent. The local schema carries no created_at column, so the
// returned CreatedAt mirrors UpdatedAt.
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	const q = `
SELECT email, full_name, preferred_language, updated_at
FROM user_profile WHERE id = ?`
	var (
		fullName  sql.NullString
		lang      string
		updatedAt string
		p         model.UserProfile
	)
	row := s.db.QueryRowContext(ctx, q, id.String())
	if err := row.Scan(&p.Email, &fullName, &lang, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	ts, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile: bad updated_at: %w", err)
	}
	p.ID = id
	p.FullName = fromNullString(fullName)
	p.PreferredLanguage = model.Language(lang)
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return &p, nil
}
