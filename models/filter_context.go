package models

import (
	"net/url"
	"strings"
)

// FilterContext identifies the active list query. Two contexts are the same
// query exactly when every field is equal.
type FilterContext struct {
	Keyword       string
	AreaCode      string
	ContentTypeID string
	Arrange       string
	PetAllowed    bool
	PetSize       PetSize
}

// Equal compares the contexts the way ToValues renders them, so keywords
// differing only in surrounding whitespace are equal.
func (f FilterContext) Equal(other FilterContext) bool {
	f.Keyword = strings.TrimSpace(f.Keyword)
	other.Keyword = strings.TrimSpace(other.Keyword)
	return f == other
}

// ToValues renders the context as /tours query args, without pagination.
func (f FilterContext) ToValues() url.Values {
	q := url.Values{}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		q.Set("keyword", kw)
	}
	if f.AreaCode != "" {
		q.Set("areaCode", f.AreaCode)
	}
	if f.ContentTypeID != "" {
		q.Set("contentTypeId", f.ContentTypeID)
	}
	if f.Arrange != "" {
		q.Set("arrange", f.Arrange)
	}
	if f.PetAllowed {
		q.Set("petAllowed", btoa(true))
	}
	if f.PetSize != "" {
		q.Set("petSize", string(f.PetSize))
	}
	return q
}
