package util

import (
	"math"
	"strconv"
	"strings"

	"tour-server/models"
)

const (
	fixedPointThreshold = 1_000_000
	fixedPointScale     = 10_000_000

	minLat = 33.0
	maxLat = 39.0
	minLng = 124.0
	maxLng = 132.0
)

// DecodeCoordinates converts the upstream mapx/mapy strings into degrees.
// Values above 1,000,000 in magnitude are fixed-point and scaled down by 1e7.
// Unparsable input or a result outside the Korean peninsula bounding box
// yields nil.
func DecodeCoordinates(mapx, mapy string) *models.Coordinates {
	lng, err := strconv.ParseFloat(strings.TrimSpace(mapx), 64)
	if err != nil {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(mapy), 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(lng) || math.IsNaN(lat) || math.IsInf(lng, 0) || math.IsInf(lat, 0) {
		return nil
	}

	if math.Abs(lng) > fixedPointThreshold || math.Abs(lat) > fixedPointThreshold {
		lng /= fixedPointScale
		lat /= fixedPointScale
	}

	if lat < minLat || lat > maxLat || lng < minLng || lng > maxLng {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lng: lng}
}
