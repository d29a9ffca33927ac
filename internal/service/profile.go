// Package service contains the reconciliation services that combine the
// local cache with the remote gateways under a fetch-then-reconcile and
// optimistic-update-then-confirm protocol.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/identity"
	"github.com/citoyen-eclaire/appcore/internal/language"
	"github.com/citoyen-eclaire/appcore/internal/model"
	"github.com/citoyen-eclaire/appcore/internal/remote"
	"github.com/citoyen-eclaire/appcore/internal/store"
)

// ProfileService reconciles the authoritative profile row with the local
// mirror. Profile edits require remote confirmation; there is no
// optimistic write path for them.
type ProfileService interface {
	// Fetch returns the profile, creating it remotely with defaults on
	// first authenticated fetch. Falls back to the local mirror when the
	// remote is unavailable.
	Fetch(ctx context.Context, ident identity.Identity) (*model.UserProfile, error)
	// Update applies a partial edit remotely and propagates side effects
	// (language selection, identity metadata).
	Update(ctx context.Context, ident identity.Identity, patch model.ProfilePatch) (*model.UserProfile, error)
}

type ProfileServiceImpl struct {
	store    *store.Store
	remote   remote.ProfileGateway
	metadata remote.MetadataWriter
	lang     *language.Selector
	log      *zap.Logger
}

// NewProfileService constructs ProfileService with required dependencies.
func NewProfileService(
	st *store.Store, gw remote.ProfileGateway, meta remote.MetadataWriter,
	lang *language.Selector, log *zap.Logger,
) *ProfileServiceImpl {
	return &ProfileServiceImpl{store: st, remote: gw, metadata: meta, lang: lang, log: log}
}

// Fetch loads the remote profile. A missing row is recovered by inserting
// a default profile built from the identity (French, current timestamps).
// Any other remote failure degrades to the local mirror when one exists.
func (s *ProfileServiceImpl) Fetch(ctx context.Context, ident identity.Identity) (*model.UserProfile, error) {
	if ident.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}

	p, err := s.remote.FetchByID(ctx, ident.UserID)
	switch {
	case err == nil:
		s.mirror(ctx, *p)
		return p, nil

	case errors.Is(err, errs.ErrNotFound):
		now := time.Now().UTC()
		def := model.UserProfile{
			ID:                ident.UserID,
			Email:             ident.Email,
			FullName:          ident.FullName,
			PreferredLanguage: model.LanguageFR,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		ins, insErr := s.remote.Insert(ctx, def)
		if insErr != nil {
			return nil, fmt.Errorf("%w: create default profile: %v", errs.ErrUnavailable, insErr)
		}
		s.mirror(ctx, *ins)
		return ins, nil

	default:
		if local := s.local(ctx, ident.UserID); local != nil {
			s.log.Warn("profile fetch degraded to local mirror", zap.Error(err))
			return local, nil
		}
		return nil, fmt.Errorf("%w: fetch profile: %v", errs.ErrUnavailable, err)
	}
}

// Update validates the edit, applies it remotely, mirrors the confirmed
// row, and propagates language and display-name side effects.
func (s *ProfileServiceImpl) Update(ctx context.Context, ident identity.Identity, patch model.ProfilePatch) (*model.UserProfile, error) {
	if ident.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return nil, fmt.Errorf("%w: display name cannot be empty", errs.ErrValidation)
	}
	if patch.PreferredLanguage != nil && !patch.PreferredLanguage.Valid() {
		return nil, fmt.Errorf("%w: unsupported language %q", errs.ErrValidation, *patch.PreferredLanguage)
	}

	upd, err := s.remote.Update(ctx, ident.UserID, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: update profile: %v", errs.ErrUnavailable, err)
	}
	s.mirror(ctx, *upd)

	if patch.PreferredLanguage != nil {
		s.lang.Set(*patch.PreferredLanguage)
	}
	if patch.FullName != nil {
		if err := s.metadata.SetFullName(ctx, ident.UserID, *patch.FullName); err != nil {
			return nil, fmt.Errorf("update identity metadata: %w", err)
		}
	}
	return upd, nil
}

// mirror writes the row to the local cache, best-effort.
func (s *ProfileServiceImpl) mirror(ctx context.Context, p model.UserProfile) {
	if err := s.store.PutProfile(ctx, p); err != nil {
		s.log.Warn("profile mirror write failed", zap.Error(err))
	}
}

// local reads the mirror, degrading read failures to absent.
func (s *ProfileServiceImpl) local(ctx context.Context, id uuid.UUID) *model.UserProfile {
	p, err := s.store.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("profile mirror read failed", zap.Error(err))
		}
		return nil
	}
	return p
}
