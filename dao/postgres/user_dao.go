package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tour-server/db"
	"tour-server/models"
)

// UserDAO persists users keyed by their session-provider id.
type UserDAO struct {
	client *db.PostgresClient
}

func NewUserDAO(client *db.PostgresClient) *UserDAO {
	return &UserDAO{client: client}
}

// UpsertUser inserts the user or refreshes its name, returning the stored row.
func (dao *UserDAO) UpsertUser(ctx context.Context, externalID, name string) (*models.User, error) {
	const q = `
		INSERT INTO users (id, external_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, external_id, name, created_at`

	var u models.User
	err := dao.client.QueryRow(ctx, q, uuid.NewString(), externalID, name).
		Scan(&u.ID, &u.ExternalID, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", externalID, err)
	}
	return &u, nil
}

// GetUserByExternalID returns nil when no user matches.
func (dao *UserDAO) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	const q = `SELECT id, external_id, name, created_at FROM users WHERE external_id = $1`

	var u models.User
	err := dao.client.QueryRow(ctx, q, externalID).Scan(&u.ID, &u.ExternalID, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", externalID, err)
	}
	return &u, nil
}
