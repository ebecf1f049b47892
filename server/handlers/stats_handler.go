package handlers

import (
	"net/http"

	"tour-server/logger"
	services "tour-server/service"
	"tour-server/util"
)

const REFRESH_QUERY_ARG = "refresh"

type StatsHandler struct {
	statsService *services.StatsService
	errors       *ErrorClassifier
	logger       logger.Logger
}

func NewStatsHandler(statsService *services.StatsService, classifier *ErrorClassifier, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		errors:       classifier,
		logger:       logger.Component(log, "StatsHandler"),
	}
}

// GetStats handles GET /stats. With refresh=true the cached stats are
// dropped and recomputed.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get(REFRESH_QUERY_ARG) == "true" {
		if err := h.statsService.InvalidateStats(r.Context()); err != nil {
			h.logger.WithError(err).Warn("failed to invalidate stats cache", nil)
		}
	}
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

// GetStatsCharts handles GET /stats/charts and renders the dashboard as HTML.
func (h *StatsHandler) GetStatsCharts(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderStatsCharts(w, stats); err != nil {
		h.logger.WithError(err).Error("failed to render stats charts", nil)
	}
}
