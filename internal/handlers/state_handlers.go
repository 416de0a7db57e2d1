package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rentledger/internal/models"
	"rentledger/internal/store"
)

// StateHandlers serves the full-state endpoints: export, import, undo, and
// the manual recurrence sweep.
type StateHandlers struct {
	store   *store.Store
	history *store.History
}

func NewStateHandlers(st *store.Store, history *store.History) *StateHandlers {
	return &StateHandlers{store: st, history: history}
}

// GetState returns the complete collection set, the payload the UI hydrates
// from and the backup export format.
func (h *StateHandlers) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.State())
}

// ImportState replaces everything with the posted payload. An empty payload
// is "delete all data". The previous state goes on the undo stack first.
func (h *StateHandlers) ImportState(c echo.Context) error {
	var payload models.Collections
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid state payload")
	}
	h.history.Checkpoint()
	if err := h.store.ImportState(c.Request().Context(), &payload); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to import state")
	}
	return c.JSON(http.StatusOK, map[string]any{"imported": true})
}

// Undo restores the most recent checkpoint.
func (h *StateHandlers) Undo(c echo.Context) error {
	restored, err := h.history.Undo(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "undo failed")
	}
	if !restored {
		return c.JSON(http.StatusOK, map[string]any{"restored": false, "depth": 0})
	}
	return c.JSON(http.StatusOK, map[string]any{"restored": true, "depth": h.history.Depth()})
}

// ClearUndo drops every checkpoint on the undo stack.
func (h *StateHandlers) ClearUndo(c echo.Context) error {
	h.history.Clear()
	return c.NoContent(http.StatusNoContent)
}

// Sweep runs the monthly recurrence sweep immediately.
func (h *StateHandlers) Sweep(c echo.Context) error {
	res, err := h.store.RunMonthlySweep(c.Request().Context(), time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "sweep failed")
	}
	return c.JSON(http.StatusOK, res)
}
