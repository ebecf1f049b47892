package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tour-server/api/tourapi"
	"tour-server/config"
	"tour-server/dao/redis"
	"tour-server/logger"
	"tour-server/metrics"
	"tour-server/models"
)

const (
	statsConcurrency = 6
	statsTopN        = 3
)

// StatsService aggregates place counts per region and per content type from
// upstream totalCounts, caching the result in Redis.
type StatsService struct {
	tourApi tourapi.TourAPI
	tourDao *redis.RedisTourDAO
	ttl     time.Duration
	now     func() time.Time
	logger  logger.Logger
}

func NewStatsService(tourApi tourapi.TourAPI, tourDao *redis.RedisTourDAO, ttl time.Duration, log logger.Logger) *StatsService {
	if ttl <= 0 {
		ttl = config.STATS_CACHE_TTL
	}
	return &StatsService{
		tourApi: tourApi,
		tourDao: tourDao,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.Component(log, "StatsService"),
	}
}

// GetStats serves the cached stats, computing and caching them on a miss.
func (ss *StatsService) GetStats(ctx context.Context) (*models.StatsData, error) {
	cached, err := ss.tourDao.GetStats(ctx)
	if err != nil {
		ss.logger.WithError(err).Warn("stats cache read failed", nil)
	}
	metrics.RecordCache("stats", cached != nil)
	if cached != nil {
		return cached, nil
	}
	return ss.RefreshStats(ctx)
}

// InvalidateStats drops the cached stats so the next GetStats recomputes them.
func (ss *StatsService) InvalidateStats(ctx context.Context) error {
	return ss.tourDao.DeleteStats(ctx)
}

// RefreshStats recomputes the stats and overwrites the cache.
func (ss *StatsService) RefreshStats(ctx context.Context) (*models.StatsData, error) {
	var (
		regions []models.RegionStats
		types   []models.TypeStats
		g       errgroup.Group
	)
	g.Go(func() error {
		var err error
		regions, err = ss.GetRegionStats(ctx)
		return err
	})
	g.Go(func() error {
		types = ss.GetTypeStats(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &models.StatsData{
		RegionStats: regions,
		TypeStats:   types,
		Summary:     Summarize(regions, types, ss.now()),
	}
	if ids, err := ss.tourDao.ListIndexedTourIDs(ctx); err != nil {
		ss.logger.WithError(err).Warn("indexed tour count failed", nil)
	} else {
		data.Summary.IndexedCount = len(ids)
	}
	if err := ss.tourDao.SetStats(ctx, data, ss.ttl); err != nil {
		ss.logger.WithError(err).Warn("stats cache write failed", nil)
	}
	return data, nil
}

// GetRegionStats counts places per area, largest first. Areas whose count
// cannot be fetched are skipped; failing to list the areas is an error.
func (ss *StatsService) GetRegionStats(ctx context.Context) ([]models.RegionStats, error) {
	areas, err := ss.tourApi.GetAreaCode(ctx, models.AreaCodeParams{})
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		stats = make([]models.RegionStats, 0, len(areas))
		g     errgroup.Group
	)
	g.SetLimit(statsConcurrency)
	for _, area := range areas {
		g.Go(func() error {
			count, err := ss.count(ctx, models.TourListParams{AreaCode: area.Code})
			if err != nil {
				ss.logger.WithError(err).Warn("region count failed", map[string]interface{}{"areaCode": area.Code, "area": area.Name})
				return nil
			}
			mu.Lock()
			stats = append(stats, models.RegionStats{Code: area.Code, Name: area.Name, Count: count})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Code < stats[j].Code
	})
	return stats, nil
}

// GetTypeStats counts places per content type in the default area, with each
// type's share of the total rounded to one decimal.
func (ss *StatsService) GetTypeStats(ctx context.Context) []models.TypeStats {
	counts := make([]*models.TypeStats, len(models.ContentTypeIDs))
	var g errgroup.Group
	g.SetLimit(statsConcurrency)
	for i, typeID := range models.ContentTypeIDs {
		g.Go(func() error {
			count, err := ss.count(ctx, models.TourListParams{AreaCode: config.DEFAULT_AREA_CODE, ContentTypeID: typeID})
			if err != nil {
				ss.logger.WithError(err).Warn("type count failed", map[string]interface{}{"contentTypeId": typeID})
				return nil
			}
			counts[i] = &models.TypeStats{ContentTypeID: typeID, TypeName: models.ContentTypeName(typeID), Count: count}
			return nil
		})
	}
	_ = g.Wait()

	stats := make([]models.TypeStats, 0, len(counts))
	total := 0
	for _, c := range counts {
		if c != nil {
			stats = append(stats, *c)
			total += c.Count
		}
	}
	for i := range stats {
		stats[i].Percentage = percentage(stats[i].Count, total)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

func (ss *StatsService) count(ctx context.Context, params models.TourListParams) (int, error) {
	params.PageNo = 1
	params.NumOfRows = 1
	res, err := ss.tourApi.GetAreaBasedList(ctx, params)
	if err != nil {
		return 0, err
	}
	return res.TotalCount, nil
}

// Summarize totals the region counts and keeps the top three of each list.
// Both lists must already be sorted by count.
func Summarize(regions []models.RegionStats, types []models.TypeStats, now time.Time) models.StatsSummary {
	total := 0
	for _, r := range regions {
		total += r.Count
	}
	return models.StatsSummary{
		TotalCount:  total,
		TopRegions:  append([]models.RegionStats{}, regions[:min(statsTopN, len(regions))]...),
		TopTypes:    append([]models.TypeStats{}, types[:min(statsTopN, len(types))]...),
		LastUpdated: now,
	}
}

func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
