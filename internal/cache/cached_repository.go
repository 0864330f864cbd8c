package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

type cachedPuzzleRepository struct {
	repository.PuzzleRepository
	cache PuzzleCache
}

// NewCachedPuzzleRepository serves GetActive through cache and evicts a
// puzzle before and after every update or deactivation. Read and fill
// failures are logged and the database answer is used. Eviction failures are
// returned, since a stale entry would keep serving the old puzzle to attempts.
func NewCachedPuzzleRepository(repo repository.PuzzleRepository, cache PuzzleCache) repository.PuzzleRepository {
	return &cachedPuzzleRepository{PuzzleRepository: repo, cache: cache}
}

func (r *cachedPuzzleRepository) GetActive(ctx context.Context, id string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_cache")

	p, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Warn("cache get failed for %s: %v", id, err)
	} else if p != nil && p.IsActive {
		log.Debug("cache hit: id=%s", id)
		return p, nil
	}

	p, err = r.PuzzleRepository.GetActive(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if err := r.cache.Set(ctx, *p); err != nil {
		log.Warn("cache set failed for %s: %v", id, err)
	}
	return p, nil
}

func (r *cachedPuzzleRepository) UpdateOwned(ctx context.Context, id string, ownerID string, changes models.PuzzleChanges) error {
	if err := r.evict(ctx, id); err != nil {
		return err
	}
	if err := r.PuzzleRepository.UpdateOwned(ctx, id, ownerID, changes); err != nil {
		return err
	}
	// A GetActive miss that read the old row may have refilled the entry
	// while the write was in flight.
	return r.evict(ctx, id)
}

func (r *cachedPuzzleRepository) DeactivateOwned(ctx context.Context, id string, ownerID string, at time.Time) error {
	if err := r.evict(ctx, id); err != nil {
		return err
	}
	if err := r.PuzzleRepository.DeactivateOwned(ctx, id, ownerID, at); err != nil {
		return err
	}
	return r.evict(ctx, id)
}

func (r *cachedPuzzleRepository) evict(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).WithPrefix("puzzle_cache").Error("cache evict failed for %s: %v", id, err)
		return fmt.Errorf("evict puzzle %s: %w", id, err)
	}
	return nil
}
