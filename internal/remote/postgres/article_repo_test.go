package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/citoyen-eclaire/appcore/internal/errs"
)

func TestArticleRepo_FetchByID_JoinsCategoryNames(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewArticleRepo(db)

	id := uuid.Must(uuid.NewV4())
	catID := uuid.Must(uuid.NewV4())
	published := time.Now().UTC()
	img := "https://cdn.example.ht/a.jpg"

	mock.ExpectQuery(`LEFT JOIN categories c ON c\.id = a\.category_id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "category_id", "title_fr", "title_ht", "content_fr", "content_ht",
			"summary_fr", "summary_ht", "image_url", "media_type", "media_url",
			"is_featured", "published_at", "name_fr", "name_ht",
		}).AddRow(
			id, catID, "Titre", "Tit", "Contenu", "Kontni",
			"Résumé", "Rezime", &img, "image", (*string)(nil),
			true, published, "Politique", "Politik",
		))

	a, err := r.FetchByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, a.ID)
	require.Equal(t, catID, a.CategoryID)
	require.Equal(t, &img, a.ImageURL)
	require.Nil(t, a.MediaURL)
	require.True(t, a.IsFeatured)
	require.Equal(t, "Politique", a.CategoryNameFR)
	require.Equal(t, "Politik", a.CategoryNameHT)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_FetchByID_NoRow(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewArticleRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`WHERE a\.id=\$1`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := r.FetchByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
