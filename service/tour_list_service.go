package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tour-server/api/tourapi"
	"tour-server/config"
	"tour-server/dao/redis"
	"tour-server/logger"
	"tour-server/metrics"
	"tour-server/models"
	"tour-server/util"
)

// TourListService backs GET /tours: one upstream list call, optional pet
// enrichment and filtering, and the response envelope.
type TourListService struct {
	tourApi        tourapi.TourAPI
	tourDao        *redis.RedisTourDAO
	pageTTL        time.Duration
	petTTL         time.Duration
	petConcurrency int
	logger         logger.Logger
}

// TourListOptions tune caching and pet lookup fan-out; zero values use defaults.
type TourListOptions struct {
	PageTTL        time.Duration
	PetInfoTTL     time.Duration
	PetConcurrency int
}

func NewTourListService(tourApi tourapi.TourAPI, tourDao *redis.RedisTourDAO, opts TourListOptions, log logger.Logger) *TourListService {
	if opts.PageTTL <= 0 {
		opts.PageTTL = config.PAGE_CACHE_TTL
	}
	if opts.PetInfoTTL <= 0 {
		opts.PetInfoTTL = config.PET_INFO_CACHE_TTL
	}
	if opts.PetConcurrency <= 0 {
		opts.PetConcurrency = config.DEFAULT_PET_LOOKUP_CONCURRENCY
	}
	return &TourListService{
		tourApi:        tourApi,
		tourDao:        tourDao,
		pageTTL:        opts.PageTTL,
		petTTL:         opts.PetInfoTTL,
		petConcurrency: opts.PetConcurrency,
		logger:         logger.Component(log, "TourListService"),
	}
}

// ListTours runs the list query. totalCount is always the upstream value, even
// after the pet filter drops items, and hasMore compares it with the number
// of items actually returned.
func (s *TourListService) ListTours(ctx context.Context, q models.TourQuery) (*models.ToursResponse, error) {
	page, err := s.fetchPage(ctx, q.ListParams())
	if err != nil {
		return nil, err
	}

	items := make([]models.TourItem, len(page.Tours))
	copy(items, page.Tours)
	if q.PetAllowed {
		s.attachPetInfo(ctx, items)
		items = models.FilterByPetInfo(items, true, q.PetSize)
	}

	return &models.ToursResponse{
		Tours:      items,
		TotalCount: page.TotalCount,
		PageNo:     page.PageNo,
		NumOfRows:  page.NumOfRows,
		HasMore:    len(items) < page.TotalCount,
		Success:    true,
	}, nil
}

// GetNearbyTours returns tours previously listed within radiusKm of (lat, lon).
func (s *TourListService) GetNearbyTours(ctx context.Context, q models.NearbyQuery) ([]models.TourItem, error) {
	return s.tourDao.GetNearbyTours(ctx, q.Lat, q.Lon, q.Radius)
}

func (s *TourListService) fetchPage(ctx context.Context, params models.TourListParams) (*models.ToursResponse, error) {
	key := params.ToValues().Encode()
	cached, err := s.tourDao.GetPage(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("page cache read failed", map[string]interface{}{"query": key})
	}
	metrics.RecordCache("page", cached != nil)
	if cached != nil {
		return cached, nil
	}

	var result *tourapi.TourListResult
	if params.Keyword != "" {
		result, err = s.tourApi.SearchKeyword(ctx, params)
	} else {
		result, err = s.tourApi.GetAreaBasedList(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	page := &models.ToursResponse{
		Tours:      result.Items,
		TotalCount: result.TotalCount,
		PageNo:     result.PageNo,
		NumOfRows:  result.NumOfRows,
	}
	if page.Tours == nil {
		page.Tours = []models.TourItem{}
	}
	if err := s.tourDao.SetPage(ctx, key, page, s.pageTTL); err != nil {
		s.logger.WithError(err).Warn("page cache write failed", map[string]interface{}{"query": key})
	}
	s.indexLocations(ctx, page.Tours)
	return page, nil
}

// indexLocations adds every item with decodable coordinates to the geo index.
func (s *TourListService) indexLocations(ctx context.Context, items []models.TourItem) {
	for _, item := range items {
		coords := util.DecodeCoordinates(item.MapX, item.MapY)
		if coords == nil {
			continue
		}
		if err := s.tourDao.UpsertTour(ctx, item, *coords); err != nil {
			s.logger.WithError(err).Warn("geo index update failed", map[string]interface{}{"contentId": item.ContentID})
		}
	}
}

// attachPetInfo looks up every item's pet record in parallel. A failed lookup
// leaves that item without a record.
func (s *TourListService) attachPetInfo(ctx context.Context, items []models.TourItem) {
	var g errgroup.Group
	g.SetLimit(s.petConcurrency)
	for i := range items {
		g.Go(func() error {
			items[i].PetInfo = s.lookupPetInfo(ctx, items[i].ContentID)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *TourListService) lookupPetInfo(ctx context.Context, contentID string) *models.PetTourInfo {
	info, found, err := s.tourDao.GetPetInfo(ctx, contentID)
	if err != nil {
		s.logger.WithError(err).Warn("pet info cache read failed", map[string]interface{}{"contentId": contentID})
	}
	metrics.RecordCache("pet_info", found)
	if found {
		return info
	}

	info, err = s.tourApi.GetDetailPetTour(ctx, contentID)
	if err != nil {
		metrics.PetLookupFailuresTotal.Inc()
		s.logger.WithError(err).Warn("pet info lookup failed", map[string]interface{}{"contentId": contentID})
		return nil
	}
	if err := s.tourDao.SetPetInfo(ctx, contentID, info, s.petTTL); err != nil {
		s.logger.WithError(err).Warn("pet info cache write failed", map[string]interface{}{"contentId": contentID})
	}
	return info
}
