package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotrack/backend/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient wraps the redis.Client with centralized connection pooling.
// It is optional infrastructure: a nil *RedisClient is safe to call and
// behaves like a permanent cache miss.
type RedisClient struct {
	client *redis.Client
}

// ErrMiss is returned on cache misses (including every call on a nil client)
var ErrMiss = redis.Nil

// NewRedisClient creates and pings a Redis client
func NewRedisClient(host, port, password string) (*RedisClient, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Log.Info("Redis client connected",
		zap.String("address", client.Options().Addr),
	)

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromAddr wraps an already-configured redis client; used by tests
func NewRedisClientFromAddr(addr string) *RedisClient {
	return &RedisClient{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Get retrieves a value, returning ErrMiss when absent
func (rc *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if rc == nil || rc.client == nil {
		return "", ErrMiss
	}
	return rc.client.Get(ctx, key).Result()
}

// SetEx stores a value with an expiry. No-op on a nil client.
func (rc *RedisClient) SetEx(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys. No-op on a nil client.
func (rc *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Del(ctx, keys...).Err()
}

// Close closes the connection gracefully
func (rc *RedisClient) Close() error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}
