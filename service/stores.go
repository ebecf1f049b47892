package services

import (
	"context"

	"tour-server/models"
)

// UserStore is the user persistence used by UserSyncService.
type UserStore interface {
	UpsertUser(ctx context.Context, externalID, name string) (*models.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// BookmarkStore is the bookmark persistence used by BookmarkService. All
// operations are scoped to one user id.
type BookmarkStore interface {
	AddBookmark(ctx context.Context, userID, contentID string) error
	RemoveBookmark(ctx context.Context, userID, contentID string) (bool, error)
	IsBookmarked(ctx context.Context, userID, contentID string) (bool, error)
	ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error)
	DeleteBookmarks(ctx context.Context, userID string, bookmarkIDs []string) (int64, error)
}
