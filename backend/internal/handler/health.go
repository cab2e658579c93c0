package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/itchan-dev/shopkeeper/shared/logger"
)

// Health reports 200 if the database answers a ping and 503 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
