package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-server/logger"
	"tour-server/models"
)

var placeTitles = map[string]string{
	"126508": "경복궁",
	"264337": "남산서울타워",
	"126078": "광안리해수욕장",
	"999001": "가로수길",
}

var placeAreas = map[string]string{
	"126508": "1",
	"264337": "1",
	"126078": "6",
	"999001": "",
}

func detailStub() *stubTourAPI {
	return &stubTourAPI{detail: func(id string) (*models.TourDetail, error) {
		title, ok := placeTitles[id]
		if !ok {
			return nil, errors.New("not found")
		}
		return &models.TourDetail{ContentID: id, Title: title, AreaCode: placeAreas[id]}, nil
	}}
}

func TestBookmarkService_AddListRemove(t *testing.T) {
	ctx := context.Background()
	store := &memoryBookmarks{}
	svc := NewBookmarkService(store, detailStub(), logger.NewTestLogger(t))

	require.NoError(t, svc.AddBookmark(ctx, "u1", "126508"))
	require.NoError(t, svc.AddBookmark(ctx, "u1", "264337"))
	require.NoError(t, svc.AddBookmark(ctx, "u1", "126508"))

	ok, err := svc.IsBookmarked(ctx, "u1", "126508")
	require.NoError(t, err)
	assert.True(t, ok)

	tours, err := svc.ListBookmarkedTours(ctx, "u1", models.BookmarkSortLatest)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, "264337", tours[0].ContentID)
	assert.Equal(t, "b-264337", tours[0].BookmarkID)

	removed, err := svc.RemoveBookmark(ctx, "u1", "126508")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestBookmarkService_ListToleratesMissingPlaces(t *testing.T) {
	ctx := context.Background()
	store := &memoryBookmarks{}
	svc := NewBookmarkService(store, detailStub(), logger.NewTestLogger(t))
	for _, id := range []string{"126508", "gone", "264337"} {
		require.NoError(t, store.AddBookmark(ctx, "u1", id))
	}

	tours, err := svc.ListBookmarkedTours(ctx, "u1", "")

	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, "264337", tours[0].ContentID)
	assert.Equal(t, "126508", tours[1].ContentID)
}

func TestBookmarkService_ListStoreFailure(t *testing.T) {
	svc := NewBookmarkService(&memoryBookmarks{err: errors.New("db down")}, detailStub(), logger.NewTestLogger(t))

	_, err := svc.ListBookmarkedTours(context.Background(), "u1", models.BookmarkSortLatest)

	assert.Error(t, err)
}

func TestBookmarkService_DeleteBookmarks(t *testing.T) {
	ctx := context.Background()
	store := &memoryBookmarks{}
	svc := NewBookmarkService(store, detailStub(), logger.NewTestLogger(t))
	_ = store.AddBookmark(ctx, "u1", "126508")
	_ = store.AddBookmark(ctx, "u1", "264337")
	_ = store.AddBookmark(ctx, "u2", "126508")

	n, err := svc.DeleteBookmarks(ctx, "u1", []string{"b-126508", "b-264337", "b-unknown"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	ok, _ := store.IsBookmarked(ctx, "u2", "126508")
	assert.True(t, ok)
}

func bookmarked(id, title, area string, minute int) models.BookmarkedTour {
	return models.BookmarkedTour{
		TourItem:          models.TourItem{ContentID: id, Title: title, AreaCode: area},
		BookmarkCreatedAt: time.Date(2024, 5, 1, 0, minute, 0, 0, time.UTC),
	}
}

func ids(tours []models.BookmarkedTour) []string {
	out := make([]string, len(tours))
	for i, t := range tours {
		out[i] = t.ContentID
	}
	return out
}

func TestSortBookmarkedTours(t *testing.T) {
	base := []models.BookmarkedTour{
		bookmarked("a", "남산서울타워", "1", 1),
		bookmarked("b", "가로수길", "", 3),
		bookmarked("c", "해운대해수욕장", "6", 2),
		bookmarked("d", "경복궁", "1", 0),
	}

	tests := []struct {
		sortBy models.BookmarkSort
		want   []string
	}{
		{models.BookmarkSortLatest, []string{"b", "c", "a", "d"}},
		{models.BookmarkSortName, []string{"b", "d", "a", "c"}},
		{models.BookmarkSortRegion, []string{"d", "a", "c", "b"}},
		{"unknown", []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sortBy), func(t *testing.T) {
			tours := append([]models.BookmarkedTour{}, base...)
			SortBookmarkedTours(tours, tt.sortBy)
			assert.Equal(t, tt.want, ids(tours))
		})
	}
}

func TestSortBookmarkedTours_LatestIsStable(t *testing.T) {
	tours := []models.BookmarkedTour{
		bookmarked("x", "b", "1", 5),
		bookmarked("y", "a", "1", 5),
	}

	SortBookmarkedTours(tours, models.BookmarkSortLatest)

	assert.Equal(t, []string{"x", "y"}, ids(tours))
}
