// Package cache keeps recently resolved active puzzles out of the database on
// the attempt path. Redis is optional; without it the no-op cache is used.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
)

const puzzleKeyPrefix = "puzzle:active:"

// PuzzleCache stores active puzzles by id. Get returns (nil, nil) on a miss.
type PuzzleCache interface {
	Get(ctx context.Context, id string) (*models.Puzzle, error)
	Set(ctx context.Context, p models.Puzzle) error
	Delete(ctx context.Context, id string) error
}

// RedisPuzzleCache caches puzzles as JSON with a fixed TTL.
type RedisPuzzleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPuzzleCache creates a Redis-backed puzzle cache.
func NewRedisPuzzleCache(client *redis.Client, ttl time.Duration) *RedisPuzzleCache {
	return &RedisPuzzleCache{client: client, ttl: ttl}
}

// cachedPuzzle keeps the answer even though the API model omits empty ones.
type cachedPuzzle struct {
	models.Puzzle
	Answer string `json:"answer"`
}

func (c *RedisPuzzleCache) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	data, err := c.client.Get(ctx, puzzleKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cp cachedPuzzle
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	p := cp.Puzzle
	p.Answer = cp.Answer
	return &p, nil
}

func (c *RedisPuzzleCache) Set(ctx context.Context, p models.Puzzle) error {
	data, err := json.Marshal(cachedPuzzle{Puzzle: p, Answer: p.Answer})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, puzzleKeyPrefix+p.ID, data, c.ttl).Err()
}

func (c *RedisPuzzleCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, puzzleKeyPrefix+id).Err()
}

// NopPuzzleCache never stores anything.
type NopPuzzleCache struct{}

func (NopPuzzleCache) Get(context.Context, string) (*models.Puzzle, error) { return nil, nil }
func (NopPuzzleCache) Set(context.Context, models.Puzzle) error            { return nil }
func (NopPuzzleCache) Delete(context.Context, string) error                { return nil }
