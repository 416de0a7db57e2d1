package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rentledger/internal/models"
	"rentledger/internal/store"
)

// PropertyHandlers serves properties and their units.
type PropertyHandlers struct {
	store   *store.Store
	history *store.History
}

func NewPropertyHandlers(st *store.Store, history *store.History) *PropertyHandlers {
	return &PropertyHandlers{store: st, history: history}
}

func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Properties())
}

func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid property id")
	}
	for _, p := range h.store.Properties() {
		if p.ID == id {
			return c.JSON(http.StatusOK, p)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "property not found")
}

func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	var req models.Property
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddProperty(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save property")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid property id")
	}
	var patch models.PropertyPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateProperty(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save property")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "property not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid property id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteProperty(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete property")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PropertyHandlers) ListUnits(c echo.Context) error {
	units := h.store.Units()
	if pid := c.QueryParam("property_id"); pid != "" {
		propertyID, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid property_id")
		}
		filtered := make([]models.Unit, 0, len(units))
		for _, u := range units {
			if u.PropertyID == propertyID {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}
	return c.JSON(http.StatusOK, units)
}

func (h *PropertyHandlers) GetUnit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid unit id")
	}
	for _, u := range h.store.Units() {
		if u.ID == id {
			return c.JSON(http.StatusOK, u)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "unit not found")
}

func (h *PropertyHandlers) CreateUnit(c echo.Context) error {
	var req models.Unit
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PropertyID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "property_id is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddUnit(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save unit")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *PropertyHandlers) UpdateUnit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid unit id")
	}
	var patch models.UnitPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateUnit(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save unit")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "unit not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *PropertyHandlers) DeleteUnit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid unit id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteUnit(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete unit")
	}
	return c.NoContent(http.StatusNoContent)
}
