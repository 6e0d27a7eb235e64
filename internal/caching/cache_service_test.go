package caching

import (
	"context"
	"testing"
	"time"

	"velodrive/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client), srv
}

func TestProductLookups_RoundTrip(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	got, err := cache.GetProductLookups(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache is a miss")

	lookups := &models.ProductLookups{
		Categories:    []models.LookupItem{{ID: 1, Name: "Bicycles"}},
		Suppliers:     []models.LookupItem{{ID: 2, Name: "Velo Ltd"}},
		Manufacturers: []models.LookupItem{},
	}
	require.NoError(t, cache.SetProductLookups(ctx, lookups, time.Minute))

	got, err = cache.GetProductLookups(ctx)
	require.NoError(t, err)
	assert.Equal(t, lookups, got)

	srv.FastForward(2 * time.Minute)
	got, err = cache.GetProductLookups(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "entry expires after ttl")
}

func TestOrderLookups_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetOrderLookups(ctx, &models.OrderLookups{Statuses: []string{"New"}}, time.Minute))
	require.NoError(t, cache.SetProductLookups(ctx, &models.ProductLookups{}, time.Minute))

	require.NoError(t, cache.InvalidateOrderLookups(ctx))
	orders, err := cache.GetOrderLookups(ctx)
	require.NoError(t, err)
	assert.Nil(t, orders)

	products, err := cache.GetProductLookups(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
}

func TestStrings(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	val, err := cache.GetString(ctx, "velodrive:revoked:abc")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, cache.SetString(ctx, "velodrive:revoked:abc", "1", time.Hour))
	val, err = cache.GetString(ctx, "velodrive:revoked:abc")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	assert.NoError(t, cache.Ping(ctx))
}

func TestCorruptEntryIsError(t *testing.T) {
	cache, srv := newTestCache(t)
	require.NoError(t, srv.Set(productLookupsKey, "{not json"))

	_, err := cache.GetProductLookups(context.Background())
	assert.Error(t, err)
}
