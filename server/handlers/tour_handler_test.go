package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-server/models"
)

func TestParseTourQuery_Defaults(t *testing.T) {
	q, err := ParseTourQuery(url.Values{"keyword": {"  궁  "}})

	require.NoError(t, err)
	assert.Equal(t, "궁", q.Keyword)
	assert.Equal(t, "1", q.AreaCode)
	assert.Equal(t, 1, q.PageNo)
	assert.Equal(t, 12, q.NumOfRows)
	assert.False(t, q.PetAllowed)
}

func TestParseTourQuery_PetAllowedOnlyWhenTrue(t *testing.T) {
	q, err := ParseTourQuery(url.Values{"petAllowed": {"1"}})
	require.NoError(t, err)
	assert.False(t, q.PetAllowed)

	q, err = ParseTourQuery(url.Values{"petAllowed": {"true"}, "petSize": {"small"}})
	require.NoError(t, err)
	assert.True(t, q.PetAllowed)
	assert.Equal(t, models.PetSizeSmall, q.PetSize)
}

func TestParseTourQuery_Invalid(t *testing.T) {
	for _, vals := range []url.Values{
		{"pageNo": {"abc"}},
		{"pageNo": {"0"}},
		{"numOfRows": {"-1"}},
		{"petSize": {"huge"}},
	} {
		_, err := ParseTourQuery(vals)
		assert.Error(t, err, vals.Encode())
	}
}

func TestGetTours_Page(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.tours.GetTours, httptest.NewRequest(http.MethodGet, "/tours?areaCode=1&pageNo=1&numOfRows=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["tours"], 5)
	assert.EqualValues(t, 14, body["totalCount"])
	assert.EqualValues(t, 1, body["pageNo"])
	assert.EqualValues(t, 5, body["numOfRows"])
	assert.Equal(t, true, body["hasMore"])
}

func TestGetTours_PetFilterKeepsTotalCount(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.tours.GetTours, httptest.NewRequest(http.MethodGet, "/tours?petAllowed=true", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Len(t, body["tours"], 3)
	assert.EqualValues(t, 14, body["totalCount"])
	assert.Equal(t, true, body["hasMore"])
}

func TestGetTours_BadRequest(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.tours.GetTours, httptest.NewRequest(http.MethodGet, "/tours?pageNo=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []interface{}{}, body["tours"])
	assert.EqualValues(t, 0, body["totalCount"])
}

func TestGetToursMap_RendersHTML(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.tours.GetToursMap, httptest.NewRequest(http.MethodGet, "/tours/map?numOfRows=5&selected=126508", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.True(t, strings.Contains(rr.Body.String(), "echarts"))
}

func TestGetNearbyTours(t *testing.T) {
	f := newFixture(t)
	// listing indexes the page locations
	serve(f.tours.GetTours, httptest.NewRequest(http.MethodGet, "/tours?numOfRows=20", nil))

	rr := serve(f.tours.GetNearbyTours, httptest.NewRequest(http.MethodGet, "/tours/nearby?lat=37.5796&lon=126.9770&radius=3", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	tours := body["tours"].([]interface{})
	require.NotEmpty(t, tours)
	assert.Equal(t, "126508", tours[0].(map[string]interface{})["contentid"])
}

func TestGetNearbyTours_InvalidCoordinates(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.tours.GetNearbyTours, httptest.NewRequest(http.MethodGet, "/tours/nearby?lat=north&lon=126.9", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(f.tours.GetNearbyTours, httptest.NewRequest(http.MethodGet, "/tours/nearby?lat=120&lon=126.9", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
