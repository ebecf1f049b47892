package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tour-server/config"
	"tour-server/logger"
	"tour-server/models"
	services "tour-server/service"
	"tour-server/util"
	"tour-server/validation"
)

const (
	KEYWORD_QUERY_ARG         = "keyword"
	AREA_CODE_QUERY_ARG       = "areaCode"
	CONTENT_TYPE_ID_QUERY_ARG = "contentTypeId"
	ARRANGE_QUERY_ARG         = "arrange"
	PAGE_NO_QUERY_ARG         = "pageNo"
	NUM_OF_ROWS_QUERY_ARG     = "numOfRows"
	PET_ALLOWED_QUERY_ARG     = "petAllowed"
	PET_SIZE_QUERY_ARG        = "petSize"
	SELECTED_QUERY_ARG        = "selected"

	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"

	defaultNearbyRadiusKm = 5
)

type TourHandler struct {
	tourService *services.TourListService
	errors      *ErrorClassifier
	logger      logger.Logger
}

func NewTourHandler(tourService *services.TourListService, classifier *ErrorClassifier, log logger.Logger) *TourHandler {
	return &TourHandler{
		tourService: tourService,
		errors:      classifier,
		logger:      logger.Component(log, "TourHandler"),
	}
}

// GetTours handles GET /tours.
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	q, err := ParseTourQuery(r.URL.Query())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	res, err := h.tourService.ListTours(r.Context(), q)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetToursMap handles GET /tours/map: the same query as /tours rendered as
// an HTML map, with ?selected= highlighted.
func (h *TourHandler) GetToursMap(w http.ResponseWriter, r *http.Request) {
	q, err := ParseTourQuery(r.URL.Query())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	res, err := h.tourService.ListTours(r.Context(), q)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotTours(w, res.Tours, r.URL.Query().Get(SELECTED_QUERY_ARG)); err != nil {
		h.logger.WithError(err).Error("failed to render tours map", nil)
	}
}

// GetNearbyTours handles GET /tours/nearby?lat=&lon=&radius= (radius in km).
func (h *TourHandler) GetNearbyTours(w http.ResponseWriter, r *http.Request) {
	q, err := parseNearbyQuery(r.URL.Query())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	tours, err := h.tourService.GetNearbyTours(r.Context(), q)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"tours":      tours,
		"totalCount": len(tours),
	})
}

// ParseTourQuery applies the /tours defaults and validates the result.
func ParseTourQuery(vals url.Values) (models.TourQuery, error) {
	q := models.TourQuery{
		Keyword:       strings.TrimSpace(vals.Get(KEYWORD_QUERY_ARG)),
		AreaCode:      vals.Get(AREA_CODE_QUERY_ARG),
		ContentTypeID: vals.Get(CONTENT_TYPE_ID_QUERY_ARG),
		Arrange:       vals.Get(ARRANGE_QUERY_ARG),
		PageNo:        config.DEFAULT_PAGE_NO,
		NumOfRows:     config.DEFAULT_NUM_OF_ROWS,
		PetAllowed:    vals.Get(PET_ALLOWED_QUERY_ARG) == "true",
		PetSize:       models.PetSize(vals.Get(PET_SIZE_QUERY_ARG)),
	}
	if q.AreaCode == "" {
		q.AreaCode = config.DEFAULT_AREA_CODE
	}

	var err error
	if q.PageNo, err = intArg(vals, PAGE_NO_QUERY_ARG, q.PageNo); err != nil {
		return q, err
	}
	if q.NumOfRows, err = intArg(vals, NUM_OF_ROWS_QUERY_ARG, q.NumOfRows); err != nil {
		return q, err
	}
	return q, validation.ValidateStruct(q)
}

func parseNearbyQuery(vals url.Values) (models.NearbyQuery, error) {
	q := models.NearbyQuery{Radius: defaultNearbyRadiusKm}
	var err error
	if q.Lat, err = floatArg(vals, LAT_QUERY_ARG); err != nil {
		return q, err
	}
	if q.Lon, err = floatArg(vals, LON_QUERY_ARG); err != nil {
		return q, err
	}
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		if q.Radius, err = floatArg(vals, RADIUS_QUERY_ARG); err != nil {
			return q, err
		}
	}
	return q, validation.ValidateStruct(q)
}

func intArg(vals url.Values, name string, def int) (int, error) {
	s := strings.TrimSpace(vals.Get(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation.NewValidationError(name, fmt.Sprintf("invalid request: %s must be an integer", name))
	}
	return n, nil
}

func floatArg(vals url.Values, name string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(vals.Get(name)), 64)
	if err != nil {
		return 0, validation.NewValidationError(name, fmt.Sprintf("invalid request: %s must be a number", name))
	}
	return f, nil
}
