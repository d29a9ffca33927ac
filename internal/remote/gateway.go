// Package remote defines the gateway interfaces over the hosted backend,
// implemented by concrete data sources.
package remote

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/citoyen-eclaire/appcore/internal/model"
)

// ProfileGateway provides CRUD access to the authoritative user_profiles
// rows. FetchByID returns errs.ErrNotFound when no row exists; any other
// failure is treated by callers as "remote unavailable".
type ProfileGateway interface {
	// FetchByID loads the profile for a user id.
	FetchByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error)
	// Insert creates the profile row and returns it as stored.
	Insert(ctx context.Context, p model.UserProfile) (*model.UserProfile, error)
	// Update applies a partial update and returns the updated row.
	Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (*model.UserProfile, error)
}

// PreferencesGateway provides CRUD access to the authoritative
// user_preferences rows, with the same error contract as ProfileGateway.
type PreferencesGateway interface {
	// FetchByID loads the preferences for a user id.
	FetchByID(ctx context.Context, id uuid.UUID) (*model.UserPreferences, error)
	// Insert creates the preferences row and returns it as stored.
	Insert(ctx context.Context, p model.UserPreferences) (*model.UserPreferences, error)
	// Update applies a partial update and returns the updated row.
	Update(ctx context.Context, id uuid.UUID, patch model.PreferencesPatch) (*model.UserPreferences, error)
}

// ArticleGateway reads published articles joined with their bilingual
// category names, the shape needed to populate the offline cache.
type ArticleGateway interface {
	// FetchByID loads one article; errs.ErrNotFound when absent.
	FetchByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
}

// MetadataWriter pushes profile edits back to the identity provider's
// user metadata.
type MetadataWriter interface {
	// SetFullName stores the display name in the auth user's metadata.
	SetFullName(ctx context.Context, id uuid.UUID, fullName string) error
}
