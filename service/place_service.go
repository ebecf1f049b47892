package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tour-server/api/tourapi"
	"tour-server/logger"
	"tour-server/models"
	"tour-server/util"
)

type PlaceService struct {
	tourApi tourapi.TourAPI
	logger  logger.Logger
}

func NewPlaceService(tourApi tourapi.TourAPI, log logger.Logger) *PlaceService {
	return &PlaceService{tourApi: tourApi, logger: logger.Component(log, "PlaceService")}
}

// GetPlaceDetail fetches the common detail, then the intro, images and pet
// record in parallel. Only a failed common detail fails the call.
func (ps *PlaceService) GetPlaceDetail(ctx context.Context, contentID string) (*models.PlaceDetail, error) {
	detail, err := ps.tourApi.GetDetailCommon(ctx, contentID)
	if err != nil {
		return nil, err
	}

	place := &models.PlaceDetail{
		Detail:   *detail,
		Images:   []models.TourImage{},
		Location: util.DecodeCoordinates(detail.MapX, detail.MapY),
	}

	var g errgroup.Group
	g.Go(func() error {
		intro, err := ps.tourApi.GetDetailIntro(ctx, contentID, detail.ContentTypeID)
		if err != nil {
			ps.warn("intro", contentID, err)
			return nil
		}
		place.Intro = intro
		return nil
	})
	g.Go(func() error {
		images, err := ps.tourApi.GetDetailImage(ctx, contentID)
		if err != nil {
			ps.warn("images", contentID, err)
			return nil
		}
		place.Images = images
		return nil
	})
	g.Go(func() error {
		pet, err := ps.tourApi.GetDetailPetTour(ctx, contentID)
		if err != nil {
			ps.warn("pet info", contentID, err)
			return nil
		}
		place.PetInfo = pet
		return nil
	})
	_ = g.Wait()

	return place, nil
}

func (ps *PlaceService) warn(section, contentID string, err error) {
	ps.logger.WithError(err).Warn("detail section unavailable", map[string]interface{}{
		"section":   section,
		"contentId": contentID,
	})
}
