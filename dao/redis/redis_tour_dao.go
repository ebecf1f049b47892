package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-server/db"
	"tour-server/models"
)

const TOURS_GEO_KEY_V1 = "tours_geo_v1"
const TOURS_GEO_PLACE_MEMBER_FORMAT_V1 = "tours_geo_place_v1:%s"

// TOUR_PAGE_KEY_FORMAT caches one upstream page per encoded query.
const TOUR_PAGE_KEY_FORMAT = "tour_page_v1:%s"

// PET_INFO_KEY_FORMAT caches the pet record of a place, "null" when it has none.
const PET_INFO_KEY_FORMAT = "pet_info_v1:%s"

const STATS_KEY_V1 = "stats_v1"

// RedisTourDAO handles cached tour data using Redis.
type RedisTourDAO struct {
	client db.RedisClient
}

// NewRedisTourDAO initializes a RedisTourDAO with the Redis client.
func NewRedisTourDAO(client db.RedisClient) *RedisTourDAO {
	return &RedisTourDAO{client: client}
}

// UpsertTour stores the tour in the geo index at coords.
func (dao *RedisTourDAO) UpsertTour(ctx context.Context, item models.TourItem, coords models.Coordinates) error {
	member := fmt.Sprintf(TOURS_GEO_PLACE_MEMBER_FORMAT_V1, item.ContentID)
	// The pet record is per request; keep only the list shape.
	item.PetInfo = nil
	return dao.client.AddLocationWithJSON(ctx, TOURS_GEO_KEY_V1, member, coords.Lat, coords.Lng, item)
}

// GetNearbyTours returns indexed tours within radiusKm, nearest first.
func (dao *RedisTourDAO) GetNearbyTours(ctx context.Context, lat, lon, radiusKm float64) ([]models.TourItem, error) {
	toursJSON, err := dao.client.GetLocationsWithinRadius(ctx, TOURS_GEO_KEY_V1, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisTourDAO] failed to get tours: %w", err)
	}

	tours := make([]models.TourItem, len(toursJSON))
	for i, tourJSON := range toursJSON {
		if err := json.Unmarshal([]byte(tourJSON), &tours[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tour JSON: %w", err)
		}
	}
	return tours, nil
}

// ListIndexedTourIDs returns the content ids present in the geo index.
func (dao *RedisTourDAO) ListIndexedTourIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, fmt.Sprintf(TOURS_GEO_PLACE_MEMBER_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list tour geo keys: %w", err)
	}
	prefix := fmt.Sprintf(TOURS_GEO_PLACE_MEMBER_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// SetPage caches an upstream page under queryKey.
func (dao *RedisTourDAO) SetPage(ctx context.Context, queryKey string, page *models.ToursResponse, ttl time.Duration) error {
	return dao.setJSON(ctx, fmt.Sprintf(TOUR_PAGE_KEY_FORMAT, queryKey), page, ttl)
}

// GetPage returns the cached page for queryKey, or nil on a miss.
func (dao *RedisTourDAO) GetPage(ctx context.Context, queryKey string) (*models.ToursResponse, error) {
	var page models.ToursResponse
	found, err := dao.getJSON(ctx, fmt.Sprintf(TOUR_PAGE_KEY_FORMAT, queryKey), &page)
	if err != nil || !found {
		return nil, err
	}
	return &page, nil
}

// SetPetInfo caches the pet record of contentID; a nil info caches "no record".
func (dao *RedisTourDAO) SetPetInfo(ctx context.Context, contentID string, info *models.PetTourInfo, ttl time.Duration) error {
	return dao.setJSON(ctx, fmt.Sprintf(PET_INFO_KEY_FORMAT, contentID), info, ttl)
}

// GetPetInfo reports whether a record was cached and returns it; a cached
// "no record" yields (nil, true, nil).
func (dao *RedisTourDAO) GetPetInfo(ctx context.Context, contentID string) (*models.PetTourInfo, bool, error) {
	var info *models.PetTourInfo
	found, err := dao.getJSON(ctx, fmt.Sprintf(PET_INFO_KEY_FORMAT, contentID), &info)
	if err != nil || !found {
		return nil, false, err
	}
	return info, true, nil
}

func (dao *RedisTourDAO) SetStats(ctx context.Context, stats *models.StatsData, ttl time.Duration) error {
	return dao.setJSON(ctx, STATS_KEY_V1, stats, ttl)
}

// GetStats returns the cached stats, or nil on a miss.
func (dao *RedisTourDAO) GetStats(ctx context.Context) (*models.StatsData, error) {
	var stats models.StatsData
	found, err := dao.getJSON(ctx, STATS_KEY_V1, &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

func (dao *RedisTourDAO) DeleteStats(ctx context.Context) error {
	if err := dao.client.Del(ctx, STATS_KEY_V1); err != nil {
		return fmt.Errorf("failed to delete stats key: %w", err)
	}
	return nil
}

func (dao *RedisTourDAO) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := dao.client.Set(ctx, key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

func (dao *RedisTourDAO) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	str, err := dao.client.Get(ctx, key)
	if errors.Is(err, db.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	if err := json.Unmarshal([]byte(str), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}
