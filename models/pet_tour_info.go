package models

import "strings"

// PetTourInfo is the detailPetTour2 record (amenity eligibility).
type PetTourInfo struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid,omitempty"`
	ChkPetLeash   string `json:"chkpetleash,omitempty"`
	ChkPetSize    string `json:"chkpetsize,omitempty"`
	ChkPetPlace   string `json:"chkpetplace,omitempty"`
	ChkPetFee     string `json:"chkpetfee,omitempty"`
	PetInfo       string `json:"petinfo,omitempty"`
	Parking       string `json:"parking,omitempty"`
}

type PetSize string

const (
	PetSizeSmall  PetSize = "small"
	PetSizeMedium PetSize = "medium"
	PetSizeLarge  PetSize = "large"
)

// petSizeAliases lists the substrings of chkpetsize that satisfy each size.
var petSizeAliases = map[PetSize][]string{
	PetSizeSmall:  {"소형", "소", "small"},
	PetSizeMedium: {"중형", "중", "medium"},
	PetSizeLarge:  {"대형", "대", "large"},
}

func (s PetSize) Valid() bool {
	_, ok := petSizeAliases[s]
	return ok
}

// AllowsPets reports whether the place accepts pets at all.
func (p *PetTourInfo) AllowsPets() bool {
	return p != nil && p.ChkPetLeash == "Y"
}

// MatchesSize applies the size constraint. Records without chkpetsize pass,
// as does an empty constraint.
func (p *PetTourInfo) MatchesSize(size PetSize) bool {
	if size == "" || p == nil || p.ChkPetSize == "" {
		return true
	}
	recorded := strings.ToLower(p.ChkPetSize)
	for _, alias := range petSizeAliases[size] {
		if strings.Contains(recorded, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// SizeLabel returns a short display label for the recorded size, or "" when
// the record carries none.
func (p *PetTourInfo) SizeLabel() string {
	if p == nil || p.ChkPetSize == "" {
		return ""
	}
	size := strings.ToLower(p.ChkPetSize)
	switch {
	case strings.Contains(size, "소") || strings.Contains(size, "small"):
		return "소형견 OK"
	case strings.Contains(size, "중") || strings.Contains(size, "medium"):
		return "중형견 OK"
	case strings.Contains(size, "대") || strings.Contains(size, "large"):
		return "대형견 OK"
	}
	return p.ChkPetSize
}

// FilterByPetInfo keeps the items whose attached record satisfies the filter.
// With petAllowed, items lacking a record or with chkpetleash != "Y" are
// dropped. The size constraint only applies to records that carry a size.
func FilterByPetInfo(items []TourItem, petAllowed bool, size PetSize) []TourItem {
	if !petAllowed && size == "" {
		return items
	}
	out := make([]TourItem, 0, len(items))
	for _, item := range items {
		if petAllowed && !item.PetInfo.AllowsPets() {
			continue
		}
		if !item.PetInfo.MatchesSize(size) {
			continue
		}
		out = append(out, item)
	}
	return out
}
