package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tour-server/api/tourapi"
	"tour-server/logger"
	"tour-server/models"
)

const bookmarkDetailConcurrency = 8

type BookmarkService struct {
	bookmarks BookmarkStore
	tourApi   tourapi.TourAPI
	logger    logger.Logger
}

func NewBookmarkService(bookmarks BookmarkStore, tourApi tourapi.TourAPI, log logger.Logger) *BookmarkService {
	return &BookmarkService{
		bookmarks: bookmarks,
		tourApi:   tourApi,
		logger:    logger.Component(log, "BookmarkService"),
	}
}

func (bs *BookmarkService) AddBookmark(ctx context.Context, userID, contentID string) error {
	return bs.bookmarks.AddBookmark(ctx, userID, contentID)
}

func (bs *BookmarkService) RemoveBookmark(ctx context.Context, userID, contentID string) (bool, error) {
	return bs.bookmarks.RemoveBookmark(ctx, userID, contentID)
}

func (bs *BookmarkService) IsBookmarked(ctx context.Context, userID, contentID string) (bool, error) {
	return bs.bookmarks.IsBookmarked(ctx, userID, contentID)
}

// DeleteBookmarks removes a batch and returns the deleted count.
func (bs *BookmarkService) DeleteBookmarks(ctx context.Context, userID string, bookmarkIDs []string) (int64, error) {
	return bs.bookmarks.DeleteBookmarks(ctx, userID, bookmarkIDs)
}

// ListBookmarkedTours resolves every bookmark to its place in parallel.
// Places whose detail cannot be fetched are left out; the rest keep bookmark
// order before sortBy is applied.
func (bs *BookmarkService) ListBookmarkedTours(ctx context.Context, userID string, sortBy models.BookmarkSort) ([]models.BookmarkedTour, error) {
	bookmarks, err := bs.bookmarks.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*models.BookmarkedTour, len(bookmarks))
	var g errgroup.Group
	g.SetLimit(bookmarkDetailConcurrency)
	for i, b := range bookmarks {
		g.Go(func() error {
			detail, err := bs.tourApi.GetDetailCommon(ctx, b.ContentID)
			if err != nil {
				bs.logger.WithError(err).Warn("bookmarked place unavailable", map[string]interface{}{
					"contentId":  b.ContentID,
					"bookmarkId": b.ID,
				})
				return nil
			}
			resolved[i] = &models.BookmarkedTour{
				TourItem:          detail.ToTourItem(),
				BookmarkID:        b.ID,
				BookmarkCreatedAt: b.CreatedAt,
			}
			return nil
		})
	}
	_ = g.Wait()

	tours := make([]models.BookmarkedTour, 0, len(resolved))
	for _, t := range resolved {
		if t != nil {
			tours = append(tours, *t)
		}
	}
	SortBookmarkedTours(tours, sortBy)
	return tours, nil
}

// SortBookmarkedTours sorts in place, stably. latest orders by bookmark time
// descending; name uses Korean collation; region orders by area code with
// empty codes last, then by name. Unknown orders leave the slice as is.
func SortBookmarkedTours(tours []models.BookmarkedTour, sortBy models.BookmarkSort) {
	col := collate.New(language.Korean)
	byName := func(a, b models.BookmarkedTour) bool {
		return col.CompareString(a.Title, b.Title) < 0
	}

	switch sortBy {
	case models.BookmarkSortLatest:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].BookmarkCreatedAt.After(tours[j].BookmarkCreatedAt)
		})
	case models.BookmarkSortName:
		sort.SliceStable(tours, func(i, j int) bool { return byName(tours[i], tours[j]) })
	case models.BookmarkSortRegion:
		sort.SliceStable(tours, func(i, j int) bool {
			a, b := tours[i].AreaCode, tours[j].AreaCode
			switch {
			case a == "" && b != "":
				return false
			case a != "" && b == "":
				return true
			case a != b:
				return a < b
			}
			return byName(tours[i], tours[j])
		})
	}
}
