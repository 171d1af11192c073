package usecase

import (
	"context"
	"log"
	"time"

	"skill-matrix/internal/repository"
)

// MatrixCache is the read-through cache in front of the matrix record.
// Implemented by infrastructure/cache.Redis; nil disables caching.
type MatrixCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const matrixCacheKey = "matrix:" + repository.DefaultMatrixName

// Writers re-read and retry this many times on a version conflict before
// giving up.
const casAttempts = 3

type matrixSource struct {
	repo   repository.MatrixRepository
	cache  MatrixCache
	logger *log.Logger
}

// load serves read paths: cache first, then the store. The cached copy may
// lag behind a concurrent writer by one invalidation.
func (s matrixSource) load(ctx context.Context) (repository.MatrixRecord, error) {
	if s.cache != nil {
		var rec repository.MatrixRecord
		hit, err := s.cache.GetJSON(ctx, matrixCacheKey, &rec)
		if err == nil && hit {
			return rec, nil
		}
	}

	rec, err := s.repo.FindByName(ctx, repository.DefaultMatrixName)
	if err != nil {
		return repository.MatrixRecord{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, matrixCacheKey, rec, 0); err != nil && s.logger != nil {
			s.logger.Printf("[Matrix] cache set failed | error=%v", err)
		}
	}
	return rec, nil
}

// loadAuthoritative bypasses the cache. Write paths must start from the
// store's current version or the CAS will always lose.
func (s matrixSource) loadAuthoritative(ctx context.Context) (repository.MatrixRecord, error) {
	return s.repo.FindByName(ctx, repository.DefaultMatrixName)
}

func (s matrixSource) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, matrixCacheKey); err != nil && s.logger != nil {
		s.logger.Printf("[Matrix] cache invalidate failed | error=%v", err)
	}
}
