package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estatewave/inquiry-service/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// Config holds redis connection and TTL settings for the directory cache.
type Config struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RedisDirectoryCache caches property and user lookups on the hot
// inquiry paths. A nil *RedisDirectoryCache is a valid no-op cache.
type RedisDirectoryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDirectoryCache connects to redis and returns the cache.
func NewRedisDirectoryCache(cfg Config) (*RedisDirectoryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisDirectoryCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisDirectoryCache) propertyKey(id string) string {
	return fmt.Sprintf("%s:property:%s", c.prefix, id)
}

func (c *RedisDirectoryCache) userKey(id string) string {
	return fmt.Sprintf("%s:user:%s", c.prefix, id)
}

// GetProperty returns a cached property or ErrCacheMiss.
func (c *RedisDirectoryCache) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if c == nil {
		return nil, ErrCacheMiss
	}
	var p domain.Property
	if err := c.get(ctx, c.propertyKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProperty caches a property.
func (c *RedisDirectoryCache) SetProperty(ctx context.Context, p *domain.Property) error {
	if c == nil {
		return nil
	}
	return c.set(ctx, c.propertyKey(p.ID), p)
}

// InvalidateProperty drops a cached property, if present.
func (c *RedisDirectoryCache) InvalidateProperty(ctx context.Context, id string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, c.propertyKey(id)).Err()
}

// GetUser returns a cached user or ErrCacheMiss.
func (c *RedisDirectoryCache) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if c == nil {
		return nil, ErrCacheMiss
	}
	var u domain.User
	if err := c.get(ctx, c.userKey(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUser caches a user.
func (c *RedisDirectoryCache) SetUser(ctx context.Context, u *domain.User) error {
	if c == nil {
		return nil
	}
	return c.set(ctx, c.userKey(u.ID), u)
}

// Close releases the redis connection.
func (c *RedisDirectoryCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RedisDirectoryCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from redis: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

func (c *RedisDirectoryCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}
