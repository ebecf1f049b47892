package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tour-server/logger"
	services "tour-server/service"
	"tour-server/validation"
)

const CONTENT_ID_PATH_VAR = "contentId"

type PlaceHandler struct {
	placeService *services.PlaceService
	errors       *ErrorClassifier
	logger       logger.Logger
}

func NewPlaceHandler(placeService *services.PlaceService, classifier *ErrorClassifier, log logger.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
		errors:       classifier,
		logger:       logger.Component(log, "PlaceHandler"),
	}
}

// GetPlace handles GET /places/{contentId}.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDVar(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	detail, err := h.placeService.GetPlaceDetail(r.Context(), contentID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"place":   detail,
	})
}

func contentIDVar(r *http.Request) (string, error) {
	id := strings.TrimSpace(mux.Vars(r)[CONTENT_ID_PATH_VAR])
	if id == "" {
		return "", validation.NewValidationError(CONTENT_ID_PATH_VAR, "invalid request: contentId is required")
	}
	return id, nil
}
