package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"sort"
	"sync"
	"time"
)

// MockRedisClient is an in-memory RedisClient used by tests and by the server
// when Redis is disabled.
type MockRedisClient struct {
	data    map[string]mockEntry
	geoData map[string]map[string]GeoLoc
	mu      sync.RWMutex
	now     func() time.Time
}

type mockEntry struct {
	value     string
	expiresAt time.Time
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]mockEntry),
		geoData: make(map[string]map[string]GeoLoc),
		now:     time.Now,
	}
}

// SetClock replaces the time source used for expiry.
func (m *MockRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (m *MockRedisClient) lookup(key string) (mockEntry, bool) {
	entry, ok := m.data[key]
	if !ok || (!entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)) {
		return mockEntry{}, false
	}
	return entry, true
}

func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}
	m.data[memberKey] = mockEntry{value: string(jsonData)}
	return nil
}

// GetLocationsWithinRadius filters members by great-circle distance, nearest first.
func (m *MockRedisClient) GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusKm float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		member string
		dist   float64
	}
	var hits []hit
	for member, loc := range m.geoData[key] {
		if d := HaversineKm(lat, lon, loc.Latitude, loc.Longitude); d <= radiusKm {
			hits = append(hits, hit{member, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	results := make([]string, 0, len(hits))
	for _, h := range hits {
		if entry, ok := m.lookup(h.member); ok {
			results = append(results, entry.value)
		}
	}
	return results, nil
}

func (m *MockRedisClient) Ping(ctx context.Context) error {
	return nil
}

// Keys supports the glob subset handled by path.Match.
func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.data {
		if _, ok := m.lookup(k); !ok {
			continue
		}
		if matched, _ := path.Match(pattern, k); matched {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
		for _, members := range m.geoData {
			delete(members, k)
		}
	}
	return nil
}

const earthRadiusKm = 6371.0088

// HaversineKm is the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
