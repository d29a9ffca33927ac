package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
	"github.com/citoyen-eclaire/appcore/internal/remote"
	"github.com/citoyen-eclaire/appcore/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakePrefsGateway struct {
	fetchOut *model.UserPreferences
	fetchErr error

	insertCalls int
	insertIn    model.UserPreferences
	insertErr   error

	updateCalls int
	updateIn    model.PreferencesPatch
	updateOut   *model.UserPreferences
	updateErr   error
}

var _ remote.PreferencesGateway = (*fakePrefsGateway)(nil)

func (f *fakePrefsGateway) FetchByID(_ context.Context, _ uuid.UUID) (*model.UserPreferences, error) {
	return f.fetchOut, f.fetchErr
}

func (f *fakePrefsGateway) Insert(_ context.Context, p model.UserPreferences) (*model.UserPreferences, error) {
	f.insertCalls++
	f.insertIn = p
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	out := p
	return &out, nil
}

func (f *fakePrefsGateway) Update(_ context.Context, _ uuid.UUID, patch model.PreferencesPatch) (*model.UserPreferences, error) {
	f.updateCalls++
	f.updateIn = patch
	return f.updateOut, f.updateErr
}

func TestPreferencesFetch_CreatesDefaultsOnFirstFetch(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	gw := &fakePrefsGateway{fetchErr: errs.ErrNotFound}
	svc := NewPreferencesService(st, gw, zap.NewNop())
	userID := uuid.Must(uuid.NewV4())

	got, err := svc.Fetch(ctx, userID)
	require.NoError(t, err)

	// Exactly one insert, with the documented defaults.
	require.Equal(t, 1, gw.insertCalls)
	require.Equal(t, userID, gw.insertIn.ID)
	require.False(t, gw.insertIn.DarkMode)
	require.True(t, gw.insertIn.DarkModeAuto)
	require.True(t, gw.insertIn.NotificationsEnabled)
	require.True(t, gw.insertIn.NotificationSound)
	require.False(t, gw.insertIn.AutoDownload)
	require.Equal(t, 1.0, gw.insertIn.TextSize)
	require.True(t, gw.insertIn.NewArticlesNotif)
	require.False(t, gw.insertIn.ReadRemindersNotif)
	require.True(t, gw.insertIn.WeeklySummaryNotif)
	require.False(t, gw.insertIn.CommunityUpdatesNotif)
	require.True(t, gw.insertIn.ImportantNewsNotif)

	// Returned and cached rows match the defaults.
	require.True(t, got.DarkModeAuto)
	cached, err := st.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.True(t, cached.DarkModeAuto)
	require.Equal(t, 1.0, cached.TextSize)
}

func TestPreferencesFetch_RefreshesCacheOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())

	stale := model.DefaultPreferences(userID, time.Now().UTC())
	require.NoError(t, st.PutPreferences(ctx, stale))

	fresh := stale
	fresh.DarkMode = true
	fresh.DarkModeAuto = false
	gw := &fakePrefsGateway{fetchOut: &fresh}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	got, err := svc.Fetch(ctx, userID)
	require.NoError(t, err)
	require.True(t, got.DarkMode)

	cached, err := st.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.True(t, cached.DarkMode)
	require.False(t, cached.DarkModeAuto)
}

func TestPreferencesFetch_DegradesToCacheWhenRemoteDown(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())

	local := model.DefaultPreferences(userID, time.Now().UTC())
	local.AutoDownload = true
	require.NoError(t, st.PutPreferences(ctx, local))

	gw := &fakePrefsGateway{fetchErr: errors.New("network down")}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	got, err := svc.Fetch(ctx, userID)
	require.NoError(t, err)
	require.True(t, got.AutoDownload)
}

func TestPreferencesFetch_FailsWhenRemoteDownAndNoCache(t *testing.T) {
	st := newStore(t)
	gw := &fakePrefsGateway{fetchErr: errors.New("network down")}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	_, err := svc.Fetch(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestPreferencesUpdate_OptimisticWriteSurvivesRemoteFailure(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())
	require.NoError(t, st.PutPreferences(ctx, model.DefaultPreferences(userID, time.Now().UTC())))

	gw := &fakePrefsGateway{updateErr: errors.New("network down")}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	off := false
	got, err := svc.Update(ctx, userID, model.PreferencesPatch{NotificationSound: &off})
	require.NoError(t, err)
	// The caller sees the attempted change even though it is unconfirmed.
	require.False(t, got.NotificationSound)

	// A later fetch before connectivity returns yields the same values.
	gw.fetchErr = errors.New("still down")
	again, err := svc.Fetch(ctx, userID)
	require.NoError(t, err)
	require.False(t, again.NotificationSound)
}

func TestPreferencesUpdate_ManualDarkModeClearsAutoMode(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())

	seed := model.DefaultPreferences(userID, time.Now().UTC())
	seed.DarkModeAuto = true
	require.NoError(t, st.PutPreferences(ctx, seed))

	confirmed := seed
	confirmed.DarkMode = true
	confirmed.DarkModeAuto = false
	gw := &fakePrefsGateway{updateOut: &confirmed}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	on := true
	got, err := svc.Update(ctx, userID, model.PreferencesPatch{DarkMode: &on})
	require.NoError(t, err)
	require.True(t, got.DarkMode)
	require.False(t, got.DarkModeAuto)

	// The payload sent remotely carries both fields.
	require.NotNil(t, gw.updateIn.DarkMode)
	require.True(t, *gw.updateIn.DarkMode)
	require.NotNil(t, gw.updateIn.DarkModeAuto)
	require.False(t, *gw.updateIn.DarkModeAuto)

	// And so does the local mirror.
	cached, err := st.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.True(t, cached.DarkMode)
	require.False(t, cached.DarkModeAuto)
}

func TestPreferencesUpdate_ConfirmedRowWinsOverOptimistic(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())
	require.NoError(t, st.PutPreferences(ctx, model.DefaultPreferences(userID, time.Now().UTC())))

	// The server may settle fields the client did not touch.
	confirmed := model.DefaultPreferences(userID, time.Now().UTC())
	confirmed.TextSize = 1.2
	confirmed.ReadRemindersNotif = true
	gw := &fakePrefsGateway{updateOut: &confirmed}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	size := 1.2
	got, err := svc.Update(ctx, userID, model.PreferencesPatch{TextSize: &size})
	require.NoError(t, err)
	require.True(t, got.ReadRemindersNotif)

	cached, err := st.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1.2, cached.TextSize)
	require.True(t, cached.ReadRemindersNotif)
}

func TestPreferencesUpdate_RejectsUnsupportedTextSize(t *testing.T) {
	st := newStore(t)
	gw := &fakePrefsGateway{}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	bad := 1.5
	_, err := svc.Update(context.Background(), uuid.Must(uuid.NewV4()), model.PreferencesPatch{TextSize: &bad})
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Zero(t, gw.updateCalls)
}

func TestPreferencesUpdate_OfflineWithEmptyCacheStartsFromDefaults(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	userID := uuid.Must(uuid.NewV4())

	gw := &fakePrefsGateway{updateErr: errors.New("network down")}
	svc := NewPreferencesService(st, gw, zap.NewNop())

	on := true
	got, err := svc.Update(ctx, userID, model.PreferencesPatch{AutoDownload: &on})
	require.NoError(t, err)
	require.True(t, got.AutoDownload)
	// Untouched fields come from the defaults.
	require.True(t, got.NotificationsEnabled)
	require.Equal(t, 1.0, got.TextSize)
}
