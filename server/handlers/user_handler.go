package handlers

import (
	"net/http"

	"tour-server/logger"
	"tour-server/models"
	services "tour-server/service"
)

const MSG_UNAUTHORIZED = "로그인이 필요합니다."

type UserHandler struct {
	userSync *services.UserSyncService
	errors   *ErrorClassifier
	logger   logger.Logger
}

func NewUserHandler(userSync *services.UserSyncService, classifier *ErrorClassifier, log logger.Logger) *UserHandler {
	return &UserHandler{
		userSync: userSync,
		errors:   classifier,
		logger:   logger.Component(log, "UserHandler"),
	}
}

// SyncUser handles POST /users/sync.
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromRequest(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, MSG_UNAUTHORIZED)
		return
	}

	user, err := h.userSync.SyncUser(r.Context(), session)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// currentUser resolves the session to a stored user, creating it on first use.
// It writes the failure response itself and returns nil when the request
// cannot proceed.
func currentUser(w http.ResponseWriter, r *http.Request, userSync *services.UserSyncService, classifier *ErrorClassifier) *models.User {
	session, ok := SessionFromRequest(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, MSG_UNAUTHORIZED)
		return nil
	}
	user, err := userSync.EnsureUserSynced(r.Context(), session)
	if err != nil {
		classifier.WriteError(w, r, err)
		return nil
	}
	return user
}
