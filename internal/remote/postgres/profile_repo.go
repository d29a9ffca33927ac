package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

const profileColumns = `id, email, full_name, preferred_language, created_at, updated_at`

// ProfileRepo implements remote.ProfileGateway against user_profiles.
type ProfileRepo struct{ db *DB }

// NewProfileRepo constructs a profile gateway.
func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

// FetchByID loads the profile row; errs.ErrNotFound when absent.
func (r *ProfileRepo) FetchByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	q := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id=$1`
	return scanProfile(r.db.Pool.QueryRow(ctx, q, id))
}

// Insert creates the profile row and returns it as stored.
func (r *ProfileRepo) Insert(ctx context.Context, p model.UserProfile) (*model.UserProfile, error) {
	q := `
INSERT INTO user_profiles (id, email, full_name, preferred_language, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + profileColumns
	row := r.db.Pool.QueryRow(ctx, q,
		p.ID, p.Email, p.FullName, string(p.PreferredLanguage), p.CreatedAt, p.UpdatedAt)
	return scanProfile(row)
}

// Update applies a partial update, bumps updated_at server-side, and
// returns the updated row. An empty patch degrades to a fetch.
func (r *ProfileRepo) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (*model.UserProfile, error) {
	if patch.IsZero() {
		return r.FetchByID(ctx, id)
	}
	set := make([]string, 0, 3)
	args := []any{id}
	if patch.FullName != nil {
		args = append(args, *patch.FullName)
		set = append(set, fmt.Sprintf("full_name=$%d", len(args)))
	}
	if patch.PreferredLanguage != nil {
		args = append(args, string(*patch.PreferredLanguage))
		set = append(set, fmt.Sprintf("preferred_language=$%d", len(args)))
	}
	set = append(set, "updated_at=now()")
	q := `UPDATE user_profiles SET ` + strings.Join(set, ", ") + ` WHERE id=$1 RETURNING ` + profileColumns
	return scanProfile(r.db.Pool.QueryRow(ctx, q, args...))
}

func scanProfile(row pgx.Row) (*model.UserProfile, error) {
	var p model.UserProfile
	var lang string
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &lang, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	p.PreferredLanguage = model.Language(lang)
	return &p, nil
}
