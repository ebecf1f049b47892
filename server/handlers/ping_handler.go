package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is any backing store that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingHandler struct {
	deps map[string]Pinger
}

// NewPingHandler checks every named dependency on each /ping.
func NewPingHandler(deps map[string]Pinger) *PingHandler {
	return &PingHandler{deps: deps}
}

func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	writeJSON(w, status, map[string]interface{}{
		"success": status == http.StatusOK,
		"message": "pong",
		"checks":  checks,
	})
}
