package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
	"github.com/citoyen-eclaire/appcore/internal/remote"
	"github.com/citoyen-eclaire/appcore/internal/store"
)

// PreferencesService reconciles user preferences. Preferences are
// low-stakes, frequently toggled settings: writes land in the local cache
// first and are confirmed remotely best-effort, so the UI keeps working
// offline. There is no retry queue; the next successful update or fetch
// is the resync opportunity.
type PreferencesService interface {
	// Fetch returns the preferences, creating them remotely with defaults
	// on first fetch and refreshing the local cache on success. Falls
	// back to the cached row when the remote is unavailable.
	Fetch(ctx context.Context, userID uuid.UUID) (*model.UserPreferences, error)
	// Update merges a partial edit over the cached row, persists it
	// locally before any network call, then confirms remotely.
	Update(ctx context.Context, userID uuid.UUID, patch model.PreferencesPatch) (*model.UserPreferences, error)
}

type PreferencesServiceImpl struct {
	store  *store.Store
	remote remote.PreferencesGateway
	log    *zap.Logger
}

// NewPreferencesService constructs PreferencesService.
func NewPreferencesService(st *store.Store, gw remote.PreferencesGateway, log *zap.Logger) *PreferencesServiceImpl {
	return &PreferencesServiceImpl{store: st, remote: gw, log: log}
}

// Fetch reads the local cache first, then reconciles with the remote row.
func (s *PreferencesServiceImpl) Fetch(ctx context.Context, userID uuid.UUID) (*model.UserPreferences, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}

	local := s.local(ctx, userID)

	p, err := s.remote.FetchByID(ctx, userID)
	switch {
	case err == nil:
		s.mirror(ctx, *p)
		return p, nil

	case errors.Is(err, errs.ErrNotFound):
		def := model.DefaultPreferences(userID, time.Now().UTC())
		ins, insErr := s.remote.Insert(ctx, def)
		if insErr != nil {
			if local != nil {
				s.log.Warn("preferences fetch degraded to local cache", zap.Error(insErr))
				return local, nil
			}
			return nil, fmt.Errorf("%w: create default preferences: %v", errs.ErrUnavailable, insErr)
		}
		s.mirror(ctx, *ins)
		return ins, nil

	default:
		if local != nil {
			s.log.Warn("preferences fetch degraded to local cache", zap.Error(err))
			return local, nil
		}
		return nil, fmt.Errorf("%w: fetch preferences: %v", errs.ErrUnavailable, err)
	}
}

// Update writes optimistically to the local cache, then confirms with the
// remote. On remote failure the optimistic row stays and is returned, so
// the caller's UI reflects the attempted change.
func (s *PreferencesServiceImpl) Update(ctx context.Context, userID uuid.UUID, patch model.PreferencesPatch) (*model.UserPreferences, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}
	if patch.TextSize != nil && !validTextSize(*patch.TextSize) {
		return nil, fmt.Errorf("%w: unsupported text size %v", errs.ErrValidation, *patch.TextSize)
	}
	// A manual dark-mode toggle always disables auto mode unless the
	// patch sets it explicitly.
	if patch.DarkMode != nil && patch.DarkModeAuto == nil {
		off := false
		patch.DarkModeAuto = &off
	}

	now := time.Now().UTC()
	base := model.DefaultPreferences(userID, now)
	if local := s.local(ctx, userID); local != nil {
		base = *local
	}
	merged := patch.Apply(base)
	merged.ID = userID
	merged.UpdatedAt = now
	if err := s.store.PutPreferences(ctx, merged); err != nil {
		s.log.Warn("optimistic preferences write failed", zap.Error(err))
	}

	upd, err := s.remote.Update(ctx, userID, patch)
	if err != nil {
		s.log.Warn("preferences update not confirmed remotely", zap.Error(err))
		return &merged, nil
	}
	s.mirror(ctx, *upd)
	return upd, nil
}

func validTextSize(v float64) bool {
	for _, t := range model.TextSizes {
		if v == t {
			return true
		}
	}
	return false
}

// mirror writes the row to the local cache, best-effort.
func (s *PreferencesServiceImpl) mirror(ctx context.Context, p model.UserPreferences) {
	if err := s.store.PutPreferences(ctx, p); err != nil {
		s.log.Warn("preferences mirror write failed", zap.Error(err))
	}
}

// local reads the cached row, degrading read failures to absent.
func (s *PreferencesServiceImpl) local(ctx context.Context, id uuid.UUID) *model.UserPreferences {
	p, err := s.store.GetPreferences(ctx, id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("preferences cache read failed", zap.Error(err))
		}
		return nil
	}
	return p
}
