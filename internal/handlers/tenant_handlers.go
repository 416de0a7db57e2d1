package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rentledger/internal/models"
	"rentledger/internal/store"
)

// TenantHandlers serves tenants, their payments, and communication logs.
type TenantHandlers struct {
	store   *store.Store
	history *store.History
}

func NewTenantHandlers(st *store.Store, history *store.History) *TenantHandlers {
	return &TenantHandlers{store: st, history: history}
}

func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants := h.store.Tenants()
	if pid := c.QueryParam("property_id"); pid != "" {
		propertyID, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid property_id")
		}
		filtered := make([]models.Tenant, 0, len(tenants))
		for _, t := range tenants {
			if t.PropertyID == propertyID {
				filtered = append(filtered, t)
			}
		}
		tenants = filtered
	}
	return c.JSON(http.StatusOK, tenants)
}

func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant id")
	}
	for _, t := range h.store.Tenants() {
		if t.ID == id {
			return c.JSON(http.StatusOK, t)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
}

func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req models.Tenant
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UnitID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unit_id is required")
	}
	if req.FirstName == "" && req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant name is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddTenant(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save tenant")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant id")
	}
	var patch models.TenantPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateTenant(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save tenant")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteTenant(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete tenant")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TenantHandlers) ListPayments(c echo.Context) error {
	payments := h.store.Payments()
	if tid := c.QueryParam("tenant_id"); tid != "" {
		tenantID, err := uuid.Parse(tid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
		}
		filtered := make([]models.Payment, 0, len(payments))
		for _, p := range payments {
			if p.TenantID == tenantID {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *TenantHandlers) CreatePayment(c echo.Context) error {
	var req models.Payment
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddPayment(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save payment")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TenantHandlers) UpdatePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	var patch models.PaymentPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdatePayment(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save payment")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *TenantHandlers) DeletePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	h.history.Checkpoint()
	if err := h.store.DeletePayment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete payment")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TenantHandlers) ListCommunicationLogs(c echo.Context) error {
	logs := h.store.CommunicationLogs()
	if tid := c.QueryParam("tenant_id"); tid != "" {
		tenantID, err := uuid.Parse(tid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
		}
		filtered := make([]models.CommunicationLog, 0, len(logs))
		for _, l := range logs {
			if l.TenantID == tenantID {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *TenantHandlers) CreateCommunicationLog(c echo.Context) error {
	var req models.CommunicationLog
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TenantID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddCommunicationLog(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save communication log")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TenantHandlers) DeleteCommunicationLog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid communication log id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteCommunicationLog(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete communication log")
	}
	return c.NoContent(http.StatusNoContent)
}
