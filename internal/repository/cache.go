package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/models"
)

const (
	orderKeyPrefix  = "order:"
	defaultCacheTTL = 5 * time.Minute
)

// RedisOrderCache implements OrderCache using Redis. Entries are always
// invalidated on status writes so webhook reconciliation stays
// last-writer-wins even with caching enabled.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ OrderCache = (*RedisOrderCache)(nil)

// NewRedisOrderCache creates a new Redis-based order cache.
func NewRedisOrderCache(cfg config.RedisConfig, logger *slog.Logger) *RedisOrderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisOrderCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves an order from cache. A miss returns (nil, nil).
func (c *RedisOrderCache) Get(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.client.Get(ctx, orderKeyPrefix+id).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "order_id", id)
		return nil, nil
	}
	if err != nil {
		c.logger.Error("cache get error", "order_id", id, "error", err)
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}

	c.logger.Debug("cache hit", "order_id", id)
	return &order, nil
}

// Set stores an order in cache.
func (c *RedisOrderCache) Set(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, orderKeyPrefix+order.ID, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache set error", "order_id", order.ID, "error", err)
		return err
	}
	return nil
}

// Delete removes an order from cache.
func (c *RedisOrderCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, orderKeyPrefix+id).Err(); err != nil {
		c.logger.Error("cache delete error", "order_id", id, "error", err)
		return err
	}
	return nil
}

// NoopOrderCache satisfies OrderCache when caching is disabled.
type NoopOrderCache struct{}

var _ OrderCache = (*NoopOrderCache)(nil)

func (NoopOrderCache) Get(ctx context.Context, id string) (*models.Order, error) { return nil, nil }
func (NoopOrderCache) Set(ctx context.Context, order *models.Order) error        { return nil }
func (NoopOrderCache) Delete(ctx context.Context, id string) error               { return nil }
