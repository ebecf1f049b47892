package tourapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-server/api"
	"tour-server/models"
)

func newFixtureMock() *TourApiClientMock {
	return NewTourApiClientMockFromDir("../../resources")
}

func TestMock_AreaBasedListPaginates(t *testing.T) {
	mock := newFixtureMock()

	first, err := mock.GetAreaBasedList(context.Background(), models.TourListParams{AreaCode: "1", PageNo: 1, NumOfRows: 5})
	require.NoError(t, err)
	second, err := mock.GetAreaBasedList(context.Background(), models.TourListParams{AreaCode: "1", PageNo: 2, NumOfRows: 5})
	require.NoError(t, err)

	assert.Len(t, first.Items, 5)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, first.TotalCount, second.TotalCount)
	assert.NotEqual(t, first.Items[0].ContentID, second.Items[0].ContentID)
	for _, item := range append(first.Items, second.Items...) {
		assert.Equal(t, "1", item.AreaCode)
	}
}

func TestMock_PastLastPageIsEmpty(t *testing.T) {
	res, err := newFixtureMock().GetAreaBasedList(context.Background(), models.TourListParams{AreaCode: "6", PageNo: 9, NumOfRows: 12})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.TotalCount)
}

func TestMock_SearchKeyword(t *testing.T) {
	res, err := newFixtureMock().SearchKeyword(context.Background(), models.TourListParams{Keyword: "궁", AreaCode: "1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	for _, item := range res.Items {
		assert.Contains(t, item.Title, "궁")
	}
}

func TestMock_Details(t *testing.T) {
	mock := newFixtureMock()
	ctx := context.Background()

	detail, err := mock.GetDetailCommon(ctx, "126508")
	require.NoError(t, err)
	assert.Equal(t, "경복궁", detail.Title)

	_, err = mock.GetDetailCommon(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, api.StatusCodeOf(err))

	intro, err := mock.GetDetailIntro(ctx, "142785", "32")
	require.NoError(t, err)
	assert.Equal(t, "120,000원~", intro.UseFee())

	images, err := mock.GetDetailImage(ctx, "126508")
	require.NoError(t, err)
	assert.Len(t, images, 3)

	pet, err := mock.GetDetailPetTour(ctx, "264337")
	require.NoError(t, err)
	assert.True(t, pet.AllowsPets())

	none, err := mock.GetDetailPetTour(ctx, "126508")
	require.NoError(t, err)
	assert.Nil(t, none)

	areas, err := mock.GetAreaCode(ctx, models.AreaCodeParams{})
	require.NoError(t, err)
	assert.Len(t, areas, 17)
}
