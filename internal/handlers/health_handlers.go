package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rentledger/internal/store"
)

// HealthHandlers serves unauthenticated liveness and readiness probes.
type HealthHandlers struct {
	store   *store.Store
	started time.Time
}

func NewHealthHandlers(st *store.Store) *HealthHandlers {
	return &HealthHandlers{store: st, started: time.Now()}
}

func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready reports 503 until the store has loaded its collections.
func (h *HealthHandlers) Ready(c echo.Context) error {
	if !h.store.Initialized() {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"ready": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ready":            true,
		"last_sweep_month": h.store.LastSweepMonth(),
	})
}
