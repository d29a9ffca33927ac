package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/citoyen-eclaire/appcore/internal/errs"
	"github.com/citoyen-eclaire/appcore/internal/model"
)

const articleColumns = `
id, category_id, title_fr, title_ht, content_fr, content_ht,
summary_fr, summary_ht, image_url, media_type, media_url,
is_featured, published_at, saved_at, category_name_fr, category_name_ht`

// PutArticle upserts a cached article. Re-saving an id replaces the row
// wholesale, SavedAt included.
func (s *Store) PutArticle(ctx context.Context, a model.OfflineArticle) error {
	const q = `
INSERT OR REPLACE INTO offline_articles (
  id, category_id, title_fr, title_ht, content_fr, content_ht,
  summary_fr, summary_ht, image_url, media_type, media_url,
  is_featured, published_at, saved_at, category_name_fr, category_name_ht
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		a.ID.String(), a.CategoryID.String(),
		a.TitleFR, a.TitleHT, a.ContentFR, a.ContentHT,
		a.SummaryFR, a.SummaryHT,
		toNullString(a.ImageURL), a.MediaType, toNullString(a.MediaURL),
		boolToInt(a.IsFeatured), formatTime(a.PublishedAt), formatTime(a.SavedAt),
		a.CategoryNameFR, a.CategoryNameHT,
	)
	if err != nil {
		return fmt.Errorf("put article: %w", err)
	}
	return nil
}

// GetArticle returns a cached article by id, or errs.ErrNotFound.
func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (*model.OfflineArticle, error) {
	q := `SELECT ` + articleColumns + ` FROM offline_articles WHERE id = ?`
	row := s.db.QueryRowContext(ctx, q, id.String())
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// ListArticles returns all cached articles, newest-saved first.
func (s *Store) ListArticles(ctx context.Context) ([]model.OfflineArticle, error) {
	q := `SELECT ` + articleColumns + ` FROM offline_articles ORDER BY saved_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []model.OfflineArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

// IsArticleSaved reports whether an article is cached.
func (s *Store) IsArticleSaved(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT COUNT(*) FROM offline_articles WHERE id = ?`
	var n int64
	if err := s.db.QueryRowContext(ctx, q, id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("is article saved: %w", err)
	}
	return n > 0, nil
}

// CountArticles returns the number of cached articles.
func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offline_articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// DeleteArticle removes one cached article. Deleting an absent id is not
// an error.
func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM offline_articles WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// DeleteArticlesOlderThan removes articles whose saved_at strictly
// precedes cutoff and returns how many were removed. A row saved exactly
// at the cutoff instant is retained. Single statement, atomic.
func (s *Store) DeleteArticlesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM offline_articles WHERE saved_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete old articles: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAllArticles removes every cached article and returns how many
// were removed.
func (s *Store) DeleteAllArticles(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM offline_articles`)
	if err != nil {
		return 0, fmt.Errorf("delete all articles: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.OfflineArticle, error) {
	var (
		id, categoryID       string
		imageURL, mediaURL   sql.NullString
		isFeatured           int
		publishedAt, savedAt string
		a                    model.OfflineArticle
	)
	err := row.Scan(
		&id, &categoryID, &a.TitleFR, &a.TitleHT, &a.ContentFR, &a.ContentHT,
		&a.SummaryFR, &a.SummaryHT, &imageURL, &a.MediaType, &mediaURL,
		&isFeatured, &publishedAt, &savedAt, &a.CategoryNameFR, &a.CategoryNameHT,
	)
	if err != nil {
		return nil, err
	}
	if a.ID, err = uuid.FromString(id); err != nil {
		return nil, fmt.Errorf("bad article id %q: %w", id, err)
	}
	if a.CategoryID, err = uuid.FromString(categoryID); err != nil {
		return nil, fmt.Errorf("bad category id %q: %w", categoryID, err)
	}
	a.ImageURL = fromNullString(imageURL)
	a.MediaURL = fromNullString(mediaURL)
	a.IsFeatured = isFeatured != 0
	if a.PublishedAt, err = parseTime(publishedAt); err != nil {
		return nil, fmt.Errorf("bad published_at: %w", err)
	}
	if a.SavedAt, err = parseTime(savedAt); err != nil {
		return nil, fmt.Errorf("bad saved_at: %w", err)
	}
	return &a, nil
}
