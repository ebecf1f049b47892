package services

import (
	"context"
	"errors"
	"strings"

	"tour-server/logger"
	"tour-server/models"
)

var ErrMissingExternalID = errors.New("session user has no external id")

type UserSyncService struct {
	users  UserStore
	logger logger.Logger
}

func NewUserSyncService(users UserStore, log logger.Logger) *UserSyncService {
	return &UserSyncService{users: users, logger: logger.Component(log, "UserSyncService")}
}

// SyncUser upserts the session user, naming it by its display-name fallback.
func (us *UserSyncService) SyncUser(ctx context.Context, session models.SessionUser) (*models.User, error) {
	externalID := strings.TrimSpace(session.ExternalID)
	if externalID == "" {
		return nil, ErrMissingExternalID
	}
	user, err := us.users.UpsertUser(ctx, externalID, session.DisplayName())
	if err != nil {
		return nil, err
	}
	us.logger.Debug("user synced", map[string]interface{}{"externalId": externalID, "userId": user.ID})
	return user, nil
}

// EnsureUserSynced returns the stored user, syncing it first if it does not
// exist yet.
func (us *UserSyncService) EnsureUserSynced(ctx context.Context, session models.SessionUser) (*models.User, error) {
	externalID := strings.TrimSpace(session.ExternalID)
	if externalID == "" {
		return nil, ErrMissingExternalID
	}
	user, err := us.users.GetUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return us.SyncUser(ctx, session)
}
