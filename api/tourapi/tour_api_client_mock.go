package tourapi

import (
	"context"
	"strings"

	"tour-server/config"
	"tour-server/models"
	"tour-server/util"
)

// TourApiClientMock serves KorService2 responses from the JSON fixtures under
// resources/. List operations filter and paginate the fixture set.
type TourApiClientMock struct {
	resolve func(resource string) string
}

// NewTourApiClientMock reads fixtures from config.GetResourcePath.
func NewTourApiClientMock() *TourApiClientMock {
	return &TourApiClientMock{resolve: config.GetResourcePath}
}

// NewTourApiClientMockFromDir reads fixtures from dir.
func NewTourApiClientMockFromDir(dir string) *TourApiClientMock {
	return &TourApiClientMock{resolve: func(resource string) string {
		return strings.TrimRight(dir, "/") + "/" + resource
	}}
}

func loadFixture[T any](c *TourApiClientMock, resource string) ([]T, error) {
	raw, err := util.ReadRawJSON(c.resolve(resource))
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}
	return itemsOf[T](env)
}

func (c *TourApiClientMock) GetAreaCode(ctx context.Context, params models.AreaCodeParams) ([]models.AreaCode, error) {
	return loadFixture[models.AreaCode](c, config.AREA_CODE_RESOURCE)
}

func (c *TourApiClientMock) GetAreaBasedList(ctx context.Context, params models.TourListParams) (*TourListResult, error) {
	items, err := loadFixture[models.TourItem](c, config.AREA_BASED_LIST_RESOURCE)
	if err != nil {
		return nil, err
	}
	return paginate(filterItems(items, params), withListDefaults(params)), nil
}

func (c *TourApiClientMock) SearchKeyword(ctx context.Context, params models.TourListParams) (*TourListResult, error) {
	params.Keyword = strings.TrimSpace(params.Keyword)
	if params.Keyword == "" {
		return nil, ErrKeywordRequired
	}
	items, err := loadFixture[models.TourItem](c, config.AREA_BASED_LIST_RESOURCE)
	if err != nil {
		return nil, err
	}
	matched := make([]models.TourItem, 0, len(items))
	for _, item := range filterItems(items, params) {
		if strings.Contains(item.Title, params.Keyword) {
			matched = append(matched, item)
		}
	}
	return paginate(matched, withListDefaults(params)), nil
}

func (c *TourApiClientMock) GetDetailCommon(ctx context.Context, contentID string) (*models.TourDetail, error) {
	items, err := loadFixture[models.TourDetail](c, config.DETAIL_COMMON_RESOURCE)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ContentID == contentID {
			return &items[i], nil
		}
	}
	return nil, notFound(contentID)
}

func (c *TourApiClientMock) GetDetailIntro(ctx context.Context, contentID, contentTypeID string) (*models.TourIntro, error) {
	items, err := loadFixture[models.TourIntro](c, config.DETAIL_INTRO_RESOURCE)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ContentID == contentID {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c *TourApiClientMock) GetDetailImage(ctx context.Context, contentID string) ([]models.TourImage, error) {
	items, err := loadFixture[models.TourImage](c, config.DETAIL_IMAGE_RESOURCE)
	if err != nil {
		return nil, err
	}
	out := []models.TourImage{}
	for _, img := range items {
		if img.ContentID == contentID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (c *TourApiClientMock) GetDetailPetTour(ctx context.Context, contentID string) (*models.PetTourInfo, error) {
	items, err := loadFixture[models.PetTourInfo](c, config.DETAIL_PET_TOUR_RESOURCE)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ContentID == contentID {
			return &items[i], nil
		}
	}
	return nil, nil
}

func filterItems(items []models.TourItem, params models.TourListParams) []models.TourItem {
	out := make([]models.TourItem, 0, len(items))
	for _, item := range items {
		if params.AreaCode != "" && item.AreaCode != params.AreaCode {
			continue
		}
		if params.ContentTypeID != "" && item.ContentTypeID != params.ContentTypeID {
			continue
		}
		out = append(out, item)
	}
	return out
}

func paginate(items []models.TourItem, params models.TourListParams) *TourListResult {
	start := (params.PageNo - 1) * params.NumOfRows
	page := []models.TourItem{}
	if start < len(items) {
		end := start + params.NumOfRows
		if end > len(items) {
			end = len(items)
		}
		page = items[start:end]
	}
	return &TourListResult{
		Items:      page,
		TotalCount: len(items),
		PageNo:     params.PageNo,
		NumOfRows:  params.NumOfRows,
	}
}
