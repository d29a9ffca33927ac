package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
)

// AuthMetadataRepo implements remote.MetadataWriter against the auth
// schema's user metadata.
type AuthMetadataRepo struct{ db *DB }

// NewAuthMetadataRepo constructs a metadata writer.
func NewAuthMetadataRepo(db *DB) *AuthMetadataRepo { return &AuthMetadataRepo{db: db} }

// SetFullName stores the display name in the auth user's metadata so the
// identity provider and the profile row agree.
func (r *AuthMetadataRepo) SetFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	const q = `
UPDATE auth.users
SET raw_user_meta_data = jsonb_set(COALESCE(raw_user_meta_data, '{}'::jsonb), '{full_name}', to_jsonb($2::text)),
    updated_at = now()
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, fullName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
