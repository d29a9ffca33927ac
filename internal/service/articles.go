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

// ArticleService manages the offline article cache. Saving stamps a fresh
// saved_at; re-saving an id replaces the cached row wholesale.
type ArticleService interface {
	// SaveForOffline fetches the article (with denormalized category
	// names) from the backend and caches it.
	SaveForOffline(ctx context.Context, articleID uuid.UUID) (*model.OfflineArticle, error)
	// Save caches an article the caller already holds.
	Save(ctx context.Context, a model.Article) (*model.OfflineArticle, error)
	// Remove drops one cached article.
	Remove(ctx context.Context, articleID uuid.UUID) error
	// List returns cached articles, newest-saved first.
	List(ctx context.Context) ([]model.OfflineArticle, error)
	// Get returns one cached article; errs.ErrNotFound when absent.
	Get(ctx context.Context, articleID uuid.UUID) (*model.OfflineArticle, error)
	// IsSaved reports whether an article is cached.
	IsSaved(ctx context.Context, articleID uuid.UUID) (bool, error)
}

type ArticleServiceImpl struct {
	store  *store.Store
	remote remote.ArticleGateway
	log    *zap.Logger
}

// NewArticleService constructs ArticleService.
func NewArticleService(st *store.Store, gw remote.ArticleGateway, log *zap.Logger) *ArticleServiceImpl {
	return &ArticleServiceImpl{store: st, remote: gw, log: log}
}

// SaveForOffline loads the article from the backend and caches it.
func (s *ArticleServiceImpl) SaveForOffline(ctx context.Context, articleID uuid.UUID) (*model.OfflineArticle, error) {
	if articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty article id", errs.ErrValidation)
	}
	a, err := s.remote.FetchByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetch article: %v", errs.ErrUnavailable, err)
	}
	return s.Save(ctx, *a)
}

// Save caches the given article with saved_at set to now.
func (s *ArticleServiceImpl) Save(ctx context.Context, a model.Article) (*model.OfflineArticle, error) {
	if a.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty article id", errs.ErrValidation)
	}
	cached := model.NewOfflineArticle(a, time.Now().UTC())
	if err := s.store.PutArticle(ctx, cached); err != nil {
		return nil, err
	}
	s.log.Debug("article cached", zap.String("id", a.ID.String()))
	return &cached, nil
}

// Remove drops one cached article.
func (s *ArticleServiceImpl) Remove(ctx context.Context, articleID uuid.UUID) error {
	if articleID == uuid.Nil {
		return fmt.Errorf("%w: empty article id", errs.ErrValidation)
	}
	return s.store.DeleteArticle(ctx, articleID)
}

// List returns all cached articles, newest-saved first.
func (s *ArticleServiceImpl) List(ctx context.Context) ([]model.OfflineArticle, error) {
	return s.store.ListArticles(ctx)
}

// Get returns one cached article.
func (s *ArticleServiceImpl) Get(ctx context.Context, articleID uuid.UUID) (*model.OfflineArticle, error) {
	if articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty article id", errs.ErrValidation)
	}
	return s.store.GetArticle(ctx, articleID)
}

// IsSaved reports whether the article is cached.
func (s *ArticleServiceImpl) IsSaved(ctx context.Context, articleID uuid.UUID) (bool, error) {
	if articleID == uuid.Nil {
		return false, fmt.Errorf("%w: empty article id", errs.ErrValidation)
	}
	return s.store.IsArticleSaved(ctx, articleID)
}
