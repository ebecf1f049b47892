package handlers

import (
	"net/http"
	"strings"

	"tour-server/models"
)

// Session headers set by the authenticating proxy in front of the server.
const (
	USER_ID_HEADER       = "X-User-Id"
	USER_NAME_HEADER     = "X-User-Name"
	USER_USERNAME_HEADER = "X-User-Username"
	USER_EMAIL_HEADER    = "X-User-Email"
)

// SessionFromRequest reads the caller from the session headers. ok is false
// for anonymous requests.
func SessionFromRequest(r *http.Request) (models.SessionUser, bool) {
	id := strings.TrimSpace(r.Header.Get(USER_ID_HEADER))
	if id == "" {
		return models.SessionUser{}, false
	}
	return models.SessionUser{
		ExternalID: id,
		FullName:   r.Header.Get(USER_NAME_HEADER),
		Username:   r.Header.Get(USER_USERNAME_HEADER),
		Email:      r.Header.Get(USER_EMAIL_HEADER),
	}, true
}
