package tourapi

import (
	"context"

	"tour-server/models"
)

// TourAPI is the remote listing source (KorService2).
type TourAPI interface {
	GetAreaCode(ctx context.Context, params models.AreaCodeParams) ([]models.AreaCode, error)
	GetAreaBasedList(ctx context.Context, params models.TourListParams) (*TourListResult, error)
	SearchKeyword(ctx context.Context, params models.TourListParams) (*TourListResult, error)
	GetDetailCommon(ctx context.Context, contentID string) (*models.TourDetail, error)
	// GetDetailIntro returns nil, nil when the place has no intro record.
	GetDetailIntro(ctx context.Context, contentID, contentTypeID string) (*models.TourIntro, error)
	GetDetailImage(ctx context.Context, contentID string) ([]models.TourImage, error)
	// GetDetailPetTour returns nil, nil when the place has no pet record.
	GetDetailPetTour(ctx context.Context, contentID string) (*models.PetTourInfo, error)
}

// TourListResult is one page of a list operation.
type TourListResult struct {
	Items      []models.TourItem `json:"items"`
	TotalCount int               `json:"totalCount"`
	PageNo     int               `json:"pageNo"`
	NumOfRows  int               `json:"numOfRows"`
}
