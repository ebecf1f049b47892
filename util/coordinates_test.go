package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		mapx    string
		mapy    string
		wantLng float64
		wantLat float64
		wantNil bool
	}{
		{name: "degrees pass through", mapx: "127.0", mapy: "37.5", wantLng: 127.0, wantLat: 37.5},
		{name: "fixed point is scaled", mapx: "1270000000", mapy: "375000000", wantLng: 127.0, wantLat: 37.5},
		{name: "scaling triggered by either axis", mapx: "126.9", mapy: "375665000", wantNil: true},
		{name: "longitude out of range", mapx: "200.0", mapy: "37.5", wantNil: true},
		{name: "latitude out of range", mapx: "127.0", mapy: "40.1", wantNil: true},
		{name: "unparsable", mapx: "abc", mapy: "37.5", wantNil: true},
		{name: "empty", mapx: "", mapy: "", wantNil: true},
		{name: "NaN", mapx: "NaN", mapy: "37.5", wantNil: true},
		{name: "surrounding whitespace", mapx: " 126.9779 ", mapy: "37.5665", wantLng: 126.9779, wantLat: 37.5665},
		{name: "bounds are inclusive", mapx: "124", mapy: "39", wantLng: 124, wantLat: 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeCoordinates(tt.mapx, tt.mapy)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.wantLng, got.Lng, 1e-9)
			assert.InDelta(t, tt.wantLat, got.Lat, 1e-9)
		})
	}
}

func TestDecodeCoordinates_Deterministic(t *testing.T) {
	first := DecodeCoordinates("1269779000", "375665000")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DecodeCoordinates("1269779000", "375665000"))
	}
}
