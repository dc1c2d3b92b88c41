package universe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sharedredis "sectorgen/internal/shared/redis"
	"sectorgen/internal/warpgraph"

	"github.com/redis/go-redis/v9"
)

// GraphCache stores the adjacency of a persisted universe. Graphs never
// change after generation, so entries carry no expiry.
type GraphCache interface {
	Get(ctx context.Context, universeID int) (warpgraph.AdjacencyList, bool, error)
	Set(ctx context.Context, universeID int, adj warpgraph.AdjacencyList) error
	Delete(ctx context.Context, universeID int) error
}

type RedisCache struct {
	client *sharedredis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache returns a nil GraphCache when client is nil, which the
// service treats as caching disabled.
func NewRedisCache(client *sharedredis.Client, prefix string, logger *slog.Logger) GraphCache {
	if client == nil {
		logger.Info("Redis unavailable, universe graph cache disabled")
		return nil
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (c *RedisCache) key(universeID int) string {
	return fmt.Sprintf("%s:universe:%d:adjacency", c.prefix, universeID)
}

func (c *RedisCache) Get(ctx context.Context, universeID int) (warpgraph.AdjacencyList, bool, error) {
	raw, err := c.client.Get(ctx, c.key(universeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached graph: %w", err)
	}

	var adj warpgraph.AdjacencyList
	if err := json.Unmarshal(raw, &adj); err != nil {
		c.logger.Warn("Discarding undecodable cached graph", "universe_id", universeID, "error", err)
		return nil, false, nil
	}
	return adj, true, nil
}

func (c *RedisCache) Set(ctx context.Context, universeID int, adj warpgraph.AdjacencyList) error {
	raw, err := json.Marshal(adj)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := c.client.Set(ctx, c.key(universeID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache graph: %w", err)
	}
	c.logger.Debug("Cached universe graph", "universe_id", universeID, "bytes", len(raw))
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, universeID int) error {
	if err := c.client.Del(ctx, c.key(universeID)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached graph: %w", err)
	}
	return nil
}
