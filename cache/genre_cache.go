package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chinook/logger"
	"chinook/metrics"
	"chinook/model"
	"chinook/repository"
)

const genreGenerationKey = "chinook:genres:gen"

// GenreRepository is a read-through cache in front of another
// GenreRepository. Every cached entry is keyed by a generation counter that
// writes bump, so a single INCR invalidates all cached genre reads. Cache
// failures are logged and fall through to the wrapped repository.
type GenreRepository struct {
	next  repository.GenreRepository
	store Store
	ttl   time.Duration
}

// NewGenreRepository wraps next with a cache backed by store.
func NewGenreRepository(next repository.GenreRepository, store Store, ttl time.Duration) *GenreRepository {
	return &GenreRepository{next: next, store: store, ttl: ttl}
}

func (c *GenreRepository) List(ctx context.Context, prefix string) ([]model.Genre, error) {
	key, ok := c.key(ctx, "list:"+prefix)
	if !ok {
		return c.next.List(ctx, prefix)
	}

	var genres []model.Genre
	if c.load(ctx, "genre_list", key, &genres) {
		return genres, nil
	}

	genres, err := c.next.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, genres)
	return genres, nil
}

func (c *GenreRepository) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	key, ok := c.key(ctx, fmt.Sprintf("id:%d", id))
	if !ok {
		return c.next.GetByID(ctx, id)
	}

	var genre model.Genre
	if c.load(ctx, "genre", key, &genre) {
		return &genre, nil
	}

	found, err := c.next.GetByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	c.save(ctx, key, found)
	return found, nil
}

func (c *GenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	if err := c.next.Create(ctx, genre); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *GenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	if err := c.next.Update(ctx, genre); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// key builds the generation-scoped key for suffix. ok is false when the
// generation cannot be read and the cache must be bypassed.
func (c *GenreRepository) key(ctx context.Context, suffix string) (string, bool) {
	gen, err := c.store.Get(ctx, genreGenerationKey)
	if errors.Is(err, ErrMiss) {
		gen = "0"
	} else if err != nil {
		logger.Warn("Genre cache unavailable", logger.ErrorField(err))
		return "", false
	}
	return fmt.Sprintf("chinook:genres:%s:%s", gen, suffix), true
}

func (c *GenreRepository) load(ctx context.Context, kind, key string, dst interface{}) bool {
	raw, err := c.store.Get(ctx, key)
	switch {
	case errors.Is(err, ErrMiss):
		metrics.RecordCacheLookup(kind, "miss")
		return false
	case err != nil:
		metrics.RecordCacheLookup(kind, "error")
		logger.Warn("Genre cache read failed", logger.String("key", key), logger.ErrorField(err))
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.RecordCacheLookup(kind, "error")
		logger.Warn("Genre cache entry corrupt", logger.String("key", key), logger.ErrorField(err))
		return false
	}
	metrics.RecordCacheLookup(kind, "hit")
	return true
}

func (c *GenreRepository) save(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to encode genre cache entry", logger.ErrorField(err))
		return
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
		logger.Warn("Genre cache write failed", logger.String("key", key), logger.ErrorField(err))
	}
}

func (c *GenreRepository) invalidate(ctx context.Context) {
	if _, err := c.store.Incr(ctx, genreGenerationKey); err != nil {
		logger.Error("Failed to invalidate genre cache", logger.ErrorField(err))
	}
}
