package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/techfolio/backend/internal/domain/portfolio"
)

// PreviewCache fronts the public preview read path. Misses fall through
// to Postgres; save events invalidate and publish events warm.
type PreviewCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, bool)
	Set(ctx context.Context, p *portfolio.Portfolio) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

type redisPreviewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPreviewCache(rdb *redis.Client, ttl time.Duration) PreviewCache {
	return &redisPreviewCache{rdb: rdb, ttl: ttl}
}

func previewKey(ownerID uuid.UUID) string {
	return "preview:portfolio:" + ownerID.String()
}

func (c *redisPreviewCache) Get(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, bool) {
	raw, err := c.rdb.Get(ctx, previewKey(ownerID)).Bytes()
	if err != nil {
		// A cache error is never surfaced; the caller reads through.
		return nil, false
	}
	p := &portfolio.Portfolio{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, false
	}
	p.Normalize()
	return p, true
}

func (c *redisPreviewCache) Set(ctx context.Context, p *portfolio.Portfolio) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, previewKey(p.OwnerID), raw, c.ttl).Err()
}

func (c *redisPreviewCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	err := c.rdb.Del(ctx, previewKey(ownerID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
