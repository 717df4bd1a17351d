package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StoragePinger reports whether the backing store is reachable.
type StoragePinger func(ctx context.Context) error

type HealthHandler struct {
	ping StoragePinger
}

// NewHealthHandler returns a handler that answers ok without probing storage when ping is nil.
func NewHealthHandler(ping StoragePinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			slog.WarnContext(r.Context(), "storage health check failed", "error", err)
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
