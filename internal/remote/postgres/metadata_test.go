package postgres

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/citoyen-eclaire/appcore/internal/errs"
)

func TestAuthMetadataRepo_SetFullName_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuthMetadataRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectExec(`UPDATE auth\.users`).
		WithArgs(id, "Marie Claire").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, r.SetFullName(context.Background(), id, "Marie Claire"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthMetadataRepo_SetFullName_NoSuchUser(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuthMetadataRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectExec(`UPDATE auth\.users`).
		WithArgs(id, "Marie Claire").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := r.SetFullName(context.Background(), id, "Marie Claire")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
