package db

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// RedisClient defines the methods available in the Redis clients.
type RedisClient interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusKm float64) ([]string, error)
	Ping(ctx context.Context) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}
