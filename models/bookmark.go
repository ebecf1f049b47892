package models

import (
	"strings"
	"time"
)

type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SessionUser is what the session layer knows about the caller.
type SessionUser struct {
	ExternalID string `json:"externalId"`
	FullName   string `json:"fullName,omitempty"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
}

// DisplayName falls back from full name to username to email.
func (s SessionUser) DisplayName() string {
	for _, candidate := range []string{s.FullName, s.Username, s.Email} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return "Unknown"
}

type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ContentID string    `json:"contentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookmarkedTour is a bookmarked place resolved to its list shape.
type BookmarkedTour struct {
	TourItem
	BookmarkID        string    `json:"bookmarkId"`
	BookmarkCreatedAt time.Time `json:"bookmarkCreatedAt"`
}

type BookmarkSort string

const (
	BookmarkSortLatest BookmarkSort = "latest"
	BookmarkSortName   BookmarkSort = "name"
	BookmarkSortRegion BookmarkSort = "region"
)

// BatchDeleteRequest is the body of POST /bookmarks/delete.
type BatchDeleteRequest struct {
	BookmarkIDs []string `json:"bookmarkIds" validate:"required,min=1,dive,uuid"`
}
