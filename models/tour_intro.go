package models

import (
	"encoding/json"
	"strings"
)

// FeeFieldPriority is the order in which fee fields are consulted. Which one
// is populated depends on the content type (leisure and lodging use their own).
var FeeFieldPriority = []string{"usefee", "usefeeleports", "usefeeaccom"}

// TourIntro is the detailIntro2 record. The upstream shape differs per content
// type; the common fields are typed and everything else lands in Extra.
type TourIntro struct {
	ContentID       string            `json:"contentid"`
	ContentTypeID   string            `json:"contenttypeid"`
	UseTime         string            `json:"usetime,omitempty"`
	RestDate        string            `json:"restdate,omitempty"`
	InfoCenter      string            `json:"infocenter,omitempty"`
	Parking         string            `json:"parking,omitempty"`
	ChkPet          string            `json:"chkpet,omitempty"`
	AccomCount      string            `json:"accomcount,omitempty"`
	ExpGuide        string            `json:"expguide,omitempty"`
	ChkBabyCarriage string            `json:"chkbabycarriage,omitempty"`
	Extra           map[string]string `json:"-"`
}

var introKnownKeys = map[string]func(*TourIntro) *string{
	"contentid":       func(t *TourIntro) *string { return &t.ContentID },
	"contenttypeid":   func(t *TourIntro) *string { return &t.ContentTypeID },
	"usetime":         func(t *TourIntro) *string { return &t.UseTime },
	"restdate":        func(t *TourIntro) *string { return &t.RestDate },
	"infocenter":      func(t *TourIntro) *string { return &t.InfoCenter },
	"parking":         func(t *TourIntro) *string { return &t.Parking },
	"chkpet":          func(t *TourIntro) *string { return &t.ChkPet },
	"accomcount":      func(t *TourIntro) *string { return &t.AccomCount },
	"expguide":        func(t *TourIntro) *string { return &t.ExpGuide },
	"chkbabycarriage": func(t *TourIntro) *string { return &t.ChkBabyCarriage },
}

func (t *TourIntro) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TourIntro{Extra: map[string]string{}}
	for k, v := range raw {
		s := stringify(v)
		if field, ok := introKnownKeys[k]; ok {
			*field(t) = s
			continue
		}
		t.Extra[k] = s
	}
	return nil
}

func (t TourIntro) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(t.Extra)+len(introKnownKeys)+1)
	for k, v := range t.Extra {
		if v != "" {
			out[k] = v
		}
	}
	for k, field := range introKnownKeys {
		if v := *field(&t); v != "" {
			out[k] = v
		}
	}
	if fee := t.UseFee(); fee != "" {
		out["usefee"] = fee
	}
	return json.Marshal(out)
}

// Field looks a key up in the typed fields first, then in Extra.
func (t *TourIntro) Field(key string) string {
	if field, ok := introKnownKeys[key]; ok {
		return *field(t)
	}
	return t.Extra[key]
}

// UseFee resolves the fee via FeeFieldPriority, skipping blank values.
func (t *TourIntro) UseFee() string {
	for _, key := range FeeFieldPriority {
		if v := strings.TrimSpace(t.Field(key)); v != "" {
			return v
		}
	}
	return ""
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
