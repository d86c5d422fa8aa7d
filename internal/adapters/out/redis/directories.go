package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var (
	_ ports.ProductDirectory   = (*CachedProductDirectory)(nil)
	_ ports.WarehouseDirectory = (*CachedWarehouseDirectory)(nil)
)

func productKey(id kernel.UUID) string {
	return strings.Join([]string{keyPrefix, "product", id.String()}, ":")
}

func warehouseKey(id kernel.UUID) string {
	return strings.Join([]string{keyPrefix, "warehouse", id.String()}, ":")
}

type productPayload struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
	Code string      `json:"code"`
}

type warehousePayload struct {
	Exists bool `json:"exists"`
}

// readThrough is the shared miss path of both decorators: look the key up,
// collapse concurrent misses and store the loaded value.
type readThrough struct {
	client *goredis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func (c *readThrough) fetch(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if err = json.Unmarshal(payload, dest); err == nil {
			return nil
		}
		c.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
	case errors.Is(err, goredis.Nil):
	default:
		c.logger.Warn("cache read failed, using directory", "key", key, "error", err)
	}

	// the load is shared by every waiting caller, so it must outlive the first one
	loadCtx := context.WithoutCancel(ctx)
	resultChan := c.group.DoChan(key, func() (any, error) {
		value, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		raw, marshalErr := json.Marshal(value)
		if marshalErr != nil {
			return nil, marshalErr
		}
		if setErr := c.client.Set(loadCtx, key, raw, c.ttl).Err(); setErr != nil {
			c.logger.Warn("cache write failed", "key", key, "error", setErr)
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

// CachedProductDirectory decorates a ProductDirectory with a Redis cache.
// Missing products are not cached.
type CachedProductDirectory struct {
	next  ports.ProductDirectory
	cache *readThrough
}

func NewCachedProductDirectory(
	client *goredis.Client,
	next ports.ProductDirectory,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedProductDirectory {
	return &CachedProductDirectory{
		next: next,
		cache: &readThrough{
			client: client,
			ttl:    ttl,
			logger: logger.With("component", "product_cache"),
		},
	}
}

func (d *CachedProductDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Product, error) {
	var payload productPayload
	err := d.cache.fetch(ctx, productKey(id), &payload, func(ctx context.Context) (any, error) {
		p, err := d.next.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return productPayload{ID: p.ID, Name: p.Name, Code: p.Code}, nil
	})
	if err != nil {
		return ports.Product{}, err
	}
	return ports.Product{ID: payload.ID, Name: payload.Name, Code: payload.Code}, nil
}

// CachedWarehouseDirectory decorates a WarehouseDirectory with a Redis cache.
// Both answers are cached until the TTL expires.
type CachedWarehouseDirectory struct {
	next  ports.WarehouseDirectory
	cache *readThrough
}

func NewCachedWarehouseDirectory(
	client *goredis.Client,
	next ports.WarehouseDirectory,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedWarehouseDirectory {
	return &CachedWarehouseDirectory{
		next: next,
		cache: &readThrough{
			client: client,
			ttl:    ttl,
			logger: logger.With("component", "warehouse_cache"),
		},
	}
}

func (d *CachedWarehouseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var payload warehousePayload
	err := d.cache.fetch(ctx, warehouseKey(id), &payload, func(ctx context.Context) (any, error) {
		ok, err := d.next.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		return warehousePayload{Exists: ok}, nil
	})
	if err != nil {
		return false, err
	}
	return payload.Exists, nil
}
