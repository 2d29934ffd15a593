package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetDownloadURL(ctx context.Context, storagePath string) (string, error) {
	log.Printf("getting cached download URL for file %q...", storagePath)

	val, err := c.client.Get(ctx, getCacheKey(storagePath)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetDownloadURL(ctx context.Context, storagePath, url string, ttl time.Duration) {
	log.Printf("caching download URL for file %q, valid for %s...", storagePath, ttl)

	if err := c.client.Set(ctx, getCacheKey(storagePath), url, ttl).Err(); err != nil {
		log.Printf("redis set failed for file %q: %v", storagePath, err)
	}
}

func (c *Cache) DeleteDownloadURL(ctx context.Context, storagePath string) error {
	log.Printf("deleting cached download URL for file %q...", storagePath)

	if err := c.client.Del(ctx, getCacheKey(storagePath)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(storagePath string) string {
	return "dlurl:" + storagePath
}
