package models

// TourQuery is a parsed GET /tours request with defaults applied.
type TourQuery struct {
	Keyword       string  `json:"keyword,omitempty"`
	AreaCode      string  `json:"areaCode" validate:"required"`
	ContentTypeID string  `json:"contentTypeId,omitempty"`
	Arrange       string  `json:"arrange,omitempty"`
	PageNo        int     `json:"pageNo" validate:"gt=0"`
	NumOfRows     int     `json:"numOfRows" validate:"gt=0,lte=1000"`
	PetAllowed    bool    `json:"petAllowed"`
	PetSize       PetSize `json:"petSize,omitempty" validate:"omitempty,oneof=small medium large"`
}

// ListParams converts the query into upstream list args.
func (q TourQuery) ListParams() TourListParams {
	return TourListParams{
		Keyword:       q.Keyword,
		AreaCode:      q.AreaCode,
		ContentTypeID: q.ContentTypeID,
		Arrange:       q.Arrange,
		PageNo:        q.PageNo,
		NumOfRows:     q.NumOfRows,
	}
}

// NearbyQuery is a parsed GET /tours/nearby request. Radius is in km.
type NearbyQuery struct {
	Lat    float64 `validate:"latitude"`
	Lon    float64 `validate:"longitude"`
	Radius float64 `validate:"gt=0,lte=100"`
}

// Coordinates are WGS84 degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
