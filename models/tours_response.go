package models

// ToursResponse is the success body of GET /tours.
type ToursResponse struct {
	Tours      []TourItem `json:"tours"`
	TotalCount int        `json:"totalCount"`
	PageNo     int        `json:"pageNo"`
	NumOfRows  int        `json:"numOfRows"`
	HasMore    bool       `json:"hasMore"`
	Success    bool       `json:"success"`
}

const (
	ErrorTypeNetwork = "NetworkError"
	ErrorTypeUnknown = "UnknownError"
)

// ErrorResponse is the failure body of every JSON endpoint.
type ErrorResponse struct {
	Success    bool       `json:"success"`
	Error      string     `json:"error"`
	StatusCode int        `json:"statusCode,omitempty"`
	ErrorCode  string     `json:"errorCode,omitempty"`
	ErrorType  string     `json:"errorType,omitempty"`
	Tours      []TourItem `json:"tours"`
	TotalCount int        `json:"totalCount"`
}

// PlaceDetail aggregates every detail section of one place. Sections other
// than Detail are nil when the upstream had nothing or failed.
type PlaceDetail struct {
	Detail   TourDetail   `json:"detail"`
	Intro    *TourIntro   `json:"intro,omitempty"`
	Images   []TourImage  `json:"images"`
	PetInfo  *PetTourInfo `json:"petInfo,omitempty"`
	Location *Coordinates `json:"location,omitempty"`
}
