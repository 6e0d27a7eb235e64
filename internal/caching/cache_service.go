package caching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"velodrive/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	productLookupsKey = "velodrive:lookups:products"
	orderLookupsKey   = "velodrive:lookups:orders"
)

type CacheService interface {
	// Lookup caching
	GetProductLookups(ctx context.Context) (*models.ProductLookups, error)
	SetProductLookups(ctx context.Context, lookups *models.ProductLookups, ttl time.Duration) error
	GetOrderLookups(ctx context.Context) (*models.OrderLookups, error)
	SetOrderLookups(ctx context.Context, lookups *models.OrderLookups, ttl time.Duration) error
	InvalidateOrderLookups(ctx context.Context) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService creates a Redis-backed cache. A failed initial ping
// is only logged; callers treat every cache error as a miss.
func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("Redis connection established (%s)", parsedAddr)
	}

	return NewCacheService(client)
}

// NewCacheService wraps an existing client.
func NewCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProductLookups(ctx context.Context) (*models.ProductLookups, error) {
	var lookups models.ProductLookups
	found, err := r.getJSON(ctx, productLookupsKey, &lookups)
	if err != nil || !found {
		return nil, err
	}
	return &lookups, nil
}

func (r *redisCacheService) SetProductLookups(ctx context.Context, lookups *models.ProductLookups, ttl time.Duration) error {
	return r.setJSON(ctx, productLookupsKey, lookups, ttl)
}

func (r *redisCacheService) GetOrderLookups(ctx context.Context) (*models.OrderLookups, error) {
	var lookups models.OrderLookups
	found, err := r.getJSON(ctx, orderLookupsKey, &lookups)
	if err != nil || !found {
		return nil, err
	}
	return &lookups, nil
}

func (r *redisCacheService) SetOrderLookups(ctx context.Context, lookups *models.OrderLookups, ttl time.Duration) error {
	return r.setJSON(ctx, orderLookupsKey, lookups, ttl)
}

func (r *redisCacheService) InvalidateOrderLookups(ctx context.Context) error {
	return r.client.Del(ctx, orderLookupsKey).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// GetString returns "" on a cache miss.
func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}

// getJSON reports found=false on a cache miss.
func (r *redisCacheService) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}
