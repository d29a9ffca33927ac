package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

// ArticleRepo implements remote.ArticleGateway against articles joined
// with categories.
type ArticleRepo struct{ db *DB }

// NewArticleRepo constructs an article gateway.
func NewArticleRepo(db *DB) *ArticleRepo { return &ArticleRepo{db: db} }

// FetchByID loads one published article with its bilingual category names
// denormalized; errs.ErrNotFound when absent.
func (r *ArticleRepo) FetchByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	const q = `
SELECT a.id, a.category_id, a.title_fr, a.title_ht, a.content_fr, a.content_ht,
       a.summary_fr, a.summary_ht, a.image_url, a.media_type, a.media_url,
       a.is_featured, a.published_at,
       COALESCE(c.name_fr, ''), COALESCE(c.name_ht, '')
FROM articles a
LEFT JOIN categories c ON c.id = a.category_id
WHERE a.id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var a model.Article
	err := row.Scan(
		&a.ID, &a.CategoryID, &a.TitleFR, &a.TitleHT, &a.ContentFR, &a.ContentHT,
		&a.SummaryFR, &a.SummaryHT, &a.ImageURL, &a.MediaType, &a.MediaURL,
		&a.IsFeatured, &a.PublishedAt, &a.CategoryNameFR, &a.CategoryNameHT,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
