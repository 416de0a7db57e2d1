package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rentledger/internal/models"
	"rentledger/internal/store"
)

// MaintenanceHandlers serves maintenance requests and activity logs.
type MaintenanceHandlers struct {
	store   *store.Store
	history *store.History
}

func NewMaintenanceHandlers(st *store.Store, history *store.History) *MaintenanceHandlers {
	return &MaintenanceHandlers{store: st, history: history}
}

func (h *MaintenanceHandlers) ListRequests(c echo.Context) error {
	requests := h.store.MaintenanceRequests()
	if status := c.QueryParam("status"); status != "" {
		filtered := make([]models.MaintenanceRequest, 0, len(requests))
		for _, m := range requests {
			if string(m.Status) == status {
				filtered = append(filtered, m)
			}
		}
		requests = filtered
	}
	if pid := c.QueryParam("property_id"); pid != "" {
		propertyID, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid property_id")
		}
		filtered := make([]models.MaintenanceRequest, 0, len(requests))
		for _, m := range requests {
			if m.PropertyID == propertyID {
				filtered = append(filtered, m)
			}
		}
		requests = filtered
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *MaintenanceHandlers) GetRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid maintenance request id")
	}
	for _, m := range h.store.MaintenanceRequests() {
		if m.ID == id {
			return c.JSON(http.StatusOK, m)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "maintenance request not found")
}

func (h *MaintenanceHandlers) CreateRequest(c echo.Context) error {
	var req models.MaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PropertyID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "property_id is required")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddMaintenanceRequest(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save maintenance request")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *MaintenanceHandlers) UpdateRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid maintenance request id")
	}
	var patch models.MaintenancePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateMaintenanceRequest(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save maintenance request")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "maintenance request not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *MaintenanceHandlers) DeleteRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid maintenance request id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteMaintenanceRequest(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete maintenance request")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MaintenanceHandlers) ListActivityLogs(c echo.Context) error {
	logs := h.store.ActivityLogs()
	kind := models.EntityKind(c.QueryParam("entity_kind"))
	entityID := c.QueryParam("entity_id")
	if kind != "" || entityID != "" {
		var refID uuid.UUID
		if entityID != "" {
			var err error
			if refID, err = uuid.Parse(entityID); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
			}
		}
		filtered := make([]models.ActivityLog, 0, len(logs))
		for _, l := range logs {
			if kind != "" && l.Ref.Kind != kind {
				continue
			}
			if entityID != "" && l.Ref.ID != refID {
				continue
			}
			filtered = append(filtered, l)
		}
		logs = filtered
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *MaintenanceHandlers) CreateActivityLog(c echo.Context) error {
	var req models.ActivityLog
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !req.Ref.Kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown entity kind")
	}
	h.history.Checkpoint()
	created, err := h.store.AddActivityLog(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save activity log")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *MaintenanceHandlers) DeleteActivityLog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid activity log id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteActivityLog(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete activity log")
	}
	return c.NoContent(http.StatusNoContent)
}
