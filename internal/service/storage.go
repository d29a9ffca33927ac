package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/citoyen-eclaire/appcore/internal/store"
)

const (
	// averageArticleSize is the fixed per-article size estimate, in
	// bytes, behind the settings-screen storage readout.
	averageArticleSize = 2048

	// defaultRetention is how long a cached article survives before the
	// maintenance sweep evicts it.
	defaultRetention = 30 * 24 * time.Hour
)

// StorageEstimate is a human-facing cache size: magnitude plus unit.
type StorageEstimate struct {
	Size int64
	Unit string // "bytes", "KB" or "MB"
}

// StorageService derives the cache size estimate and applies the article
// retention policy. Callers refresh their estimate after either purge.
type StorageService interface {
	// Estimate reports the approximate cache size in the largest unit
	// that keeps the number readable.
	Estimate(ctx context.Context) (StorageEstimate, error)
	// PurgeOld evicts articles older than the default retention window.
	PurgeOld(ctx context.Context) (int64, error)
	// PurgeOlderThan evicts articles saved strictly before cutoff.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// ClearAll empties the article cache unconditionally.
	ClearAll(ctx context.Context) (int64, error)
}

type StorageServiceImpl struct {
	store *store.Store
	log   *zap.Logger
}

// NewStorageService constructs StorageService.
func NewStorageService(st *store.Store, log *zap.Logger) *StorageServiceImpl {
	return &StorageServiceImpl{store: st, log: log}
}

// Estimate multiplies the article count by the fixed average size and
// formats the result: <1024 in bytes, <1024 KB in KB, otherwise MB.
func (s *StorageServiceImpl) Estimate(ctx context.Context) (StorageEstimate, error) {
	n, err := s.store.CountArticles(ctx)
	if err != nil {
		return StorageEstimate{}, err
	}
	total := n * averageArticleSize
	switch {
	case total < 1024:
		return StorageEstimate{Size: total, Unit: "bytes"}, nil
	case total < 1024*1024:
		return StorageEstimate{Size: roundDiv(total, 1024), Unit: "KB"}, nil
	default:
		return StorageEstimate{Size: roundDiv(total, 1024*1024), Unit: "MB"}, nil
	}
}

func roundDiv(n, div int64) int64 {
	return int64(math.Round(float64(n) / float64(div)))
}

// PurgeOld runs the maintenance sweep with the default 30-day cutoff.
func (s *StorageServiceImpl) PurgeOld(ctx context.Context) (int64, error) {
	return s.PurgeOlderThan(ctx, time.Now().UTC().Add(-defaultRetention))
}

// PurgeOlderThan evicts articles saved strictly before cutoff. An article
// saved exactly at the cutoff instant is retained.
func (s *StorageServiceImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.store.DeleteArticlesOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("evicted stale cached articles", zap.Int64("count", n))
	}
	return n, nil
}

// ClearAll empties the article cache. Destructive; the settings screen
// confirms with the user before calling.
func (s *StorageServiceImpl) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAllArticles(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("cleared article cache", zap.Int64("count", n))
	return n, nil
}
