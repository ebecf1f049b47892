package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-server/logger"
	"tour-server/models"
)

func TestSyncUser_NameFallback(t *testing.T) {
	tests := []struct {
		name    string
		session models.SessionUser
		want    string
	}{
		{"full name", models.SessionUser{ExternalID: "e1", FullName: "홍길동", Username: "hong"}, "홍길동"},
		{"username", models.SessionUser{ExternalID: "e1", Username: "hong", Email: "h@example.com"}, "hong"},
		{"email", models.SessionUser{ExternalID: "e1", Email: "h@example.com"}, "h@example.com"},
		{"unknown", models.SessionUser{ExternalID: "e1", FullName: "  "}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserSyncService(&memoryUsers{}, logger.NewTestLogger(t))

			u, err := svc.SyncUser(context.Background(), tt.session)

			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Name)
			assert.Equal(t, "e1", u.ExternalID)
		})
	}
}

func TestSyncUser_MissingExternalID(t *testing.T) {
	svc := NewUserSyncService(&memoryUsers{}, logger.NewTestLogger(t))

	_, err := svc.SyncUser(context.Background(), models.SessionUser{FullName: "x"})

	assert.ErrorIs(t, err, ErrMissingExternalID)
}

func TestEnsureUserSynced_ReusesExistingUser(t *testing.T) {
	ctx := context.Background()
	users := &memoryUsers{}
	svc := NewUserSyncService(users, logger.NewTestLogger(t))

	first, err := svc.EnsureUserSynced(ctx, models.SessionUser{ExternalID: "e1", FullName: "first"})
	require.NoError(t, err)
	second, err := svc.EnsureUserSynced(ctx, models.SessionUser{ExternalID: "e1", FullName: "renamed"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "first", second.Name)
}
