package models

import "time"

type RegionStats struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TypeStats struct {
	ContentTypeID string  `json:"contentTypeId"`
	TypeName      string  `json:"typeName"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
}

// StatsSummary totals the region counts. IndexedCount is the number of places
// available to /tours/nearby.
type StatsSummary struct {
	TotalCount   int           `json:"totalCount"`
	IndexedCount int           `json:"indexedCount"`
	TopRegions   []RegionStats `json:"topRegions"`
	TopTypes     []TypeStats   `json:"topTypes"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

type StatsData struct {
	RegionStats []RegionStats `json:"regionStats"`
	TypeStats   []TypeStats   `json:"typeStats"`
	Summary     StatsSummary  `json:"summary"`
}
