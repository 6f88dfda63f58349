package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisGateway is a Gateway backed by Redis. Keys are namespaced under a
// fixed prefix so the application shares a database cleanly with other
// tenants.
type RedisGateway struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

// NewRedisGateway creates a Gateway from a redis:// connection URL.
func NewRedisGateway(url string) (*RedisGateway, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisGateway{
		client: redis.NewClient(opts),
		prefix: "playbook-app:",
		ctx:    context.Background(),
	}, nil
}

// NewRedisGatewayWithClient wraps an existing client, used by tests.
func NewRedisGatewayWithClient(client *redis.Client) *RedisGateway {
	return &RedisGateway{
		client: client,
		prefix: "playbook-app:",
		ctx:    context.Background(),
	}
}

func (g *RedisGateway) key(k string) string {
	return g.prefix + k
}

func (g *RedisGateway) Init() error {
	if err := g.client.Ping(g.ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}

func (g *RedisGateway) Get(key string) (string, error) {
	v, err := g.client.Get(g.ctx, g.key(key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return v, nil
}

func (g *RedisGateway) Set(key, value string) error {
	if err := g.client.Set(g.ctx, g.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (g *RedisGateway) Delete(key string) error {
	if err := g.client.Del(g.ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (g *RedisGateway) List(prefix string) ([]string, error) {
	full, err := g.client.Keys(g.ctx, g.key(prefix)+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", prefix, err)
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		if len(k) > len(g.prefix) {
			keys = append(keys, k[len(g.prefix):])
		}
	}
	return keys, nil
}

var _ Gateway = (*RedisGateway)(nil)
