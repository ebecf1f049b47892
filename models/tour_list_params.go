package models

import (
	"net/url"
	"strconv"
)

// TourListParams are the query args of areaBasedList2 and searchKeyword2.
// Zero values are omitted from the request.
type TourListParams struct {
	Keyword       string
	AreaCode      string
	SigunguCode   string
	ContentTypeID string
	Arrange       string
	PageNo        int
	NumOfRows     int
}

func (p TourListParams) ToValues() url.Values {
	q := url.Values{}

	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.AreaCode != "" {
		q.Set("areaCode", p.AreaCode)
	}
	if p.SigunguCode != "" {
		q.Set("sigunguCode", p.SigunguCode)
	}
	if p.ContentTypeID != "" {
		q.Set("contentTypeId", p.ContentTypeID)
	}
	if p.Arrange != "" {
		q.Set("arrange", p.Arrange)
	}
	if p.PageNo > 0 {
		q.Set("pageNo", itoa(p.PageNo))
	}
	if p.NumOfRows > 0 {
		q.Set("numOfRows", itoa(p.NumOfRows))
	}
	return q
}

// AreaCodeParams are the query args of areaCode2.
type AreaCodeParams struct {
	AreaCode  string
	NumOfRows int
}

func (p AreaCodeParams) ToValues() url.Values {
	q := url.Values{}
	if p.AreaCode != "" {
		q.Set("areaCode", p.AreaCode)
	}
	if p.NumOfRows > 0 {
		q.Set("numOfRows", itoa(p.NumOfRows))
	}
	return q
}

func itoa(i int) string     { return strconv.Itoa(i) }
func btoa(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
