package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tour-server/db"
	"tour-server/models"
)

const uniqueViolation = "23505"

// BookmarkDAO persists bookmarks scoped to a user id.
type BookmarkDAO struct {
	client *db.PostgresClient
}

func NewBookmarkDAO(client *db.PostgresClient) *BookmarkDAO {
	return &BookmarkDAO{client: client}
}

// AddBookmark inserts a bookmark. Bookmarking the same place twice succeeds.
func (dao *BookmarkDAO) AddBookmark(ctx context.Context, userID, contentID string) error {
	const q = `INSERT INTO bookmarks (id, user_id, content_id) VALUES ($1, $2, $3)`

	_, err := dao.client.Exec(ctx, q, uuid.NewString(), userID, contentID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to add bookmark %s: %w", contentID, err)
	}
	return nil
}

// RemoveBookmark reports whether a row was deleted.
func (dao *BookmarkDAO) RemoveBookmark(ctx context.Context, userID, contentID string) (bool, error) {
	const q = `DELETE FROM bookmarks WHERE user_id = $1 AND content_id = $2`

	res, err := dao.client.Exec(ctx, q, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark %s: %w", contentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (dao *BookmarkDAO) IsBookmarked(ctx context.Context, userID, contentID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND content_id = $2)`

	var exists bool
	if err := dao.client.QueryRow(ctx, q, userID, contentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check bookmark %s: %w", contentID, err)
	}
	return exists, nil
}

// ListBookmarks returns the user's bookmarks, most recent first.
func (dao *BookmarkDAO) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	const q = `
		SELECT id, user_id, content_id, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := dao.client.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.ContentID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmarks removes the given bookmark ids owned by userID and returns
// how many rows went away.
func (dao *BookmarkDAO) DeleteBookmarks(ctx context.Context, userID string, bookmarkIDs []string) (int64, error) {
	if len(bookmarkIDs) == 0 {
		return 0, nil
	}
	const q = `DELETE FROM bookmarks WHERE user_id = $1 AND id = ANY($2)`

	res, err := dao.client.Exec(ctx, q, userID, pq.Array(bookmarkIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmarks: %w", err)
	}
	return res.RowsAffected()
}
