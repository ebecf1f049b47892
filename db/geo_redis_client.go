package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"tour-server/config"
	"tour-server/logger"
)

// GeoRedisClient implements RedisClient on top of go-redis.
type GeoRedisClient struct {
	client *redis.Client
	logger logger.Logger
}

// NewGeoRedisClient checks the connection and wraps client.
func NewGeoRedisClient(ctx context.Context, client *redis.Client, log logger.Logger) (*GeoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	r := &GeoRedisClient{client: client, logger: logger.Component(log, "GeoRedisClient")}
	r.logger.Info("connected to redis", map[string]interface{}{"addr": client.Options().Addr})
	return r, nil
}

// NewRedisFromConfig dials the configured Redis instance.
func NewRedisFromConfig(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*GeoRedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	r, err := NewGeoRedisClient(ctx, client, log)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}

// Set stores value under key; a zero ttl keeps it forever.
func (r *GeoRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get returns ErrCacheMiss for missing keys.
func (r *GeoRedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// AddLocationWithJSON stores a geolocation along with its JSON payload.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	})
	pipe.Set(ctx, memberKey, jsonData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add geolocation: %w", err)
	}
	return nil
}

// GetLocationsWithinRadius returns the JSON payloads of members within
// radiusKm of (lat, lon), nearest first.
func (r *GeoRedisClient) GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusKm float64) ([]string, error) {
	results, err := r.client.GeoRadius(ctx, key, lon, lat, &redis.GeoRadiusQuery{
		Radius: radiusKm,
		Unit:   "km",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}

	objects := make([]string, 0, len(results))
	for _, loc := range results {
		data, err := r.client.Get(ctx, loc.Name).Result()
		if err != nil {
			r.logger.WithError(err).Warn("skipping geo member without payload", map[string]interface{}{"member": loc.Name})
			continue
		}
		objects = append(objects, data)
	}
	return objects, nil
}

func (r *GeoRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *GeoRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	return r.client.Keys(ctx, pattern).Result()
}

func (r *GeoRedisClient) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close releases the underlying connection pool.
func (r *GeoRedisClient) Close() error {
	return r.client.Close()
}
