package adaptor

import (
	"context"
	"net/http"
	"time"

	"venue-booking/internal/data/repository"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	store repository.Store
	log   *zap.Logger
}

func NewHealthHandler(store repository.Store, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log.With(zap.String("handler", "health")),
	}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Booking API is running!"))
}

// Health handles GET /health and reports whether the store answers a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("Store ping failed", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "store unavailable")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
