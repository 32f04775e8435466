package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON layer over Redis. A nil *Cache is valid and behaves
// as a permanent miss, so the API keeps working when Redis is down and
// tests can run without it.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis. On failure it logs and returns nil; callers treat a
// nil cache as disabled rather than refusing to start.
func Connect(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] not available (%v), running uncached\n", err)
		return nil
	}

	log.Println("[redis] connected")
	return &Cache{client: client}
}

// GetJSON reads a key and, if present, unmarshals the stored JSON into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

// Incr bumps an integer counter key. Used to version the top-list cache.
func (c *Cache) Incr(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.client.Incr(ctx, key).Err()
}

// GetInt64 reads an integer counter key; a missing key reads as 0.
func (c *Cache) GetInt64(ctx context.Context, key string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// Del removes keys. Used to invalidate cached recipes after a mutation.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
