package models

// TourItem is one row of areaBasedList2 / searchKeyword2. Coordinates are kept
// in the upstream string encoding; decode them with util.DecodeCoordinates.
type TourItem struct {
	ContentID     string       `json:"contentid"`
	ContentTypeID string       `json:"contenttypeid"`
	Title         string       `json:"title"`
	Addr1         string       `json:"addr1"`
	Addr2         string       `json:"addr2,omitempty"`
	AreaCode      string       `json:"areacode"`
	SigunguCode   string       `json:"sigungucode,omitempty"`
	MapX          string       `json:"mapx"`
	MapY          string       `json:"mapy"`
	FirstImage    string       `json:"firstimage,omitempty"`
	FirstImage2   string       `json:"firstimage2,omitempty"`
	Tel           string       `json:"tel,omitempty"`
	Cat1          string       `json:"cat1,omitempty"`
	Cat2          string       `json:"cat2,omitempty"`
	Cat3          string       `json:"cat3,omitempty"`
	ModifiedTime  string       `json:"modifiedtime"`
	PetInfo       *PetTourInfo `json:"petInfo,omitempty"`
}

// TourDetail is the detailCommon2 record.
type TourDetail struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2,omitempty"`
	AreaCode      string `json:"areacode,omitempty"`
	ZipCode       string `json:"zipcode,omitempty"`
	Tel           string `json:"tel,omitempty"`
	Homepage      string `json:"homepage,omitempty"`
	Overview      string `json:"overview,omitempty"`
	FirstImage    string `json:"firstimage,omitempty"`
	FirstImage2   string `json:"firstimage2,omitempty"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
	Cat1          string `json:"cat1,omitempty"`
	Cat2          string `json:"cat2,omitempty"`
	Cat3          string `json:"cat3,omitempty"`
	ModifiedTime  string `json:"modifiedtime,omitempty"`
}

// ToTourItem projects a detail record onto the list shape.
func (d TourDetail) ToTourItem() TourItem {
	return TourItem{
		ContentID:     d.ContentID,
		ContentTypeID: d.ContentTypeID,
		Title:         d.Title,
		Addr1:         d.Addr1,
		Addr2:         d.Addr2,
		AreaCode:      d.AreaCode,
		MapX:          d.MapX,
		MapY:          d.MapY,
		FirstImage:    d.FirstImage,
		FirstImage2:   d.FirstImage2,
		Tel:           d.Tel,
		Cat1:          d.Cat1,
		Cat2:          d.Cat2,
		Cat3:          d.Cat3,
		ModifiedTime:  d.ModifiedTime,
	}
}

// TourImage is one detailImage2 row.
type TourImage struct {
	ContentID     string `json:"contentid"`
	ImageName     string `json:"imgname,omitempty"`
	OriginImgURL  string `json:"originimgurl,omitempty"`
	SmallImageURL string `json:"smallimageurl,omitempty"`
	CpyrhtDivCd   string `json:"cpyrhtDivCd,omitempty"`
	SerialNum     string `json:"serialnum,omitempty"`
}

// AreaCode is one areaCode2 row.
type AreaCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
	RNum int    `json:"rnum,omitempty"`
}

// ContentTypeNames maps contentTypeId to its display name.
var ContentTypeNames = map[string]string{
	"12": "관광지",
	"14": "문화시설",
	"15": "축제/행사",
	"25": "여행코스",
	"28": "레포츠",
	"32": "숙박",
	"38": "쇼핑",
	"39": "음식점",
}

// ContentTypeIDs lists the content types in display order.
var ContentTypeIDs = []string{"12", "14", "15", "25", "28", "32", "38", "39"}

func ContentTypeName(contentTypeID string) string {
	if name, ok := ContentTypeNames[contentTypeID]; ok {
		return name
	}
	return "알 수 없음"
}
