package handlers

import (
	"encoding/json"
	"net/http"

	"tour-server/logger"
	"tour-server/models"
	services "tour-server/service"
	"tour-server/validation"
)

const SORT_QUERY_ARG = "sort"

type BookmarkHandler struct {
	bookmarks *services.BookmarkService
	userSync  *services.UserSyncService
	errors    *ErrorClassifier
	logger    logger.Logger
}

func NewBookmarkHandler(bookmarks *services.BookmarkService, userSync *services.UserSyncService, classifier *ErrorClassifier, log logger.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
		userSync:  userSync,
		errors:    classifier,
		logger:    logger.Component(log, "BookmarkHandler"),
	}
}

// ListBookmarks handles GET /bookmarks?sort=latest|name|region.
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.userSync, h.errors)
	if user == nil {
		return
	}

	sortBy := models.BookmarkSort(r.URL.Query().Get(SORT_QUERY_ARG))
	if sortBy == "" {
		sortBy = models.BookmarkSortLatest
	}

	tours, err := h.bookmarks.ListBookmarkedTours(r.Context(), user.ID, sortBy)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"bookmarks":  tours,
		"totalCount": len(tours),
	})
}

// GetBookmark handles GET /bookmarks/{contentId}.
func (h *BookmarkHandler) GetBookmark(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDVar(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	user := currentUser(w, r, h.userSync, h.errors)
	if user == nil {
		return
	}

	bookmarked, err := h.bookmarks.IsBookmarked(r.Context(), user.ID, contentID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"contentId":  contentID,
		"bookmarked": bookmarked,
	})
}

// AddBookmark handles POST /bookmarks/{contentId}. Adding twice is a no-op.
func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDVar(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	user := currentUser(w, r, h.userSync, h.errors)
	if user == nil {
		return
	}

	if err := h.bookmarks.AddBookmark(r.Context(), user.ID, contentID); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"contentId":  contentID,
		"bookmarked": true,
	})
}

// RemoveBookmark handles DELETE /bookmarks/{contentId}.
func (h *BookmarkHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDVar(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	user := currentUser(w, r, h.userSync, h.errors)
	if user == nil {
		return
	}

	removed, err := h.bookmarks.RemoveBookmark(r.Context(), user.ID, contentID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"contentId":  contentID,
		"removed":    removed,
		"bookmarked": false,
	})
}

// DeleteBookmarks handles POST /bookmarks/delete with a list of bookmark ids.
func (h *BookmarkHandler) DeleteBookmarks(w http.ResponseWriter, r *http.Request) {
	var req models.BatchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.WriteError(w, r, validation.NewValidationError("bookmarkIds", "invalid request: malformed JSON body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	user := currentUser(w, r, h.userSync, h.errors)
	if user == nil {
		return
	}

	deleted, err := h.bookmarks.DeleteBookmarks(r.Context(), user.ID, req.BookmarkIDs)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"deletedCount": deleted,
	})
}
