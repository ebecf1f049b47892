package postgres

import (
	"context"
	"fmt"

	"tour-server/db"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id          UUID PRIMARY KEY,
	external_id TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS bookmarks (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, content_id)
);
CREATE INDEX IF NOT EXISTS idx_bookmarks_user_created ON bookmarks (user_id, created_at DESC);
`

// EnsureSchema creates the users and bookmarks tables when missing.
func EnsureSchema(ctx context.Context, client *db.PostgresClient) error {
	if _, err := client.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
