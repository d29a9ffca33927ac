package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

const profileCols = `SELECT id, email, full_name, preferred_language, created_at, updated_at FROM user_profiles WHERE id=\$1`

func TestProfileRepo_FetchByID_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	name := "Jean Baptiste"

	mock.ExpectQuery(profileCols).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "full_name", "preferred_language", "created_at", "updated_at"},
		).AddRow(id, "j@b.ht", &name, "ht", now, now))

	p, err := r.FetchByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.Equal(t, "j@b.ht", p.Email)
	require.Equal(t, &name, p.FullName)
	require.Equal(t, model.LanguageHT, p.PreferredLanguage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_FetchByID_NoRow(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(profileCols).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := r.FetchByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProfileRepo_FetchByID_OtherError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(profileCols).WithArgs(id).WillReturnError(errors.New("conn refused"))

	_, err := r.FetchByID(context.Background(), id)
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestProfileRepo_Insert_ReturnsStoredRow(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	in := model.UserProfile{
		ID: id, Email: "new@user.fr", FullName: nil,
		PreferredLanguage: model.LanguageFR, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(`INSERT INTO user_profiles`).
		WithArgs(id, "new@user.fr", (*string)(nil), "fr", now, now).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "full_name", "preferred_language", "created_at", "updated_at"},
		).AddRow(id, "new@user.fr", (*string)(nil), "fr", now, now))

	p, err := r.Insert(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, model.LanguageFR, p.PreferredLanguage)
	require.Nil(t, p.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_Update_BuildsPartialSet(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	lang := model.LanguageHT

	mock.ExpectQuery(`UPDATE user_profiles SET preferred_language=\$2, updated_at=now\(\) WHERE id=\$1 RETURNING`).
		WithArgs(id, "ht").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "full_name", "preferred_language", "created_at", "updated_at"},
		).AddRow(id, "j@b.ht", (*string)(nil), "ht", now, now))

	p, err := r.Update(context.Background(), id, model.ProfilePatch{PreferredLanguage: &lang})
	require.NoError(t, err)
	require.Equal(t, model.LanguageHT, p.PreferredLanguage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_Update_EmptyPatchFetches(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	mock.ExpectQuery(profileCols).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "full_name", "preferred_language", "created_at", "updated_at"},
		).AddRow(id, "j@b.ht", (*string)(nil), "fr", now, now))

	_, err := r.Update(context.Background(), id, model.ProfilePatch{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
