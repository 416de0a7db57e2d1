package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rentledger/internal/models"
	"rentledger/internal/store"
)

// ExpenseHandlers serves expenses and vendors.
type ExpenseHandlers struct {
	store   *store.Store
	history *store.History
}

func NewExpenseHandlers(st *store.Store, history *store.History) *ExpenseHandlers {
	return &ExpenseHandlers{store: st, history: history}
}

func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	expenses := h.store.Expenses()
	if pid := c.QueryParam("property_id"); pid != "" {
		propertyID, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid property_id")
		}
		filtered := make([]models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if e.PropertyID == propertyID {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}
	return c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	var req models.Expense
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PropertyID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "property_id is required")
	}
	if !req.Category.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown expense category")
	}
	h.history.Checkpoint()
	created, err := h.store.AddExpense(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save expense")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ExpenseHandlers) UpdateExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expense id")
	}
	var patch models.ExpensePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown expense category")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateExpense(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save expense")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "expense not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expense id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteExpense(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete expense")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandlers) ListVendors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Vendors())
}

func (h *ExpenseHandlers) CreateVendor(c echo.Context) error {
	var req models.Vendor
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	h.history.Checkpoint()
	created, err := h.store.AddVendor(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save vendor")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ExpenseHandlers) UpdateVendor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vendor id")
	}
	var patch models.VendorPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	h.history.Checkpoint()
	updated, err := h.store.UpdateVendor(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save vendor")
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, "vendor not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ExpenseHandlers) DeleteVendor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vendor id")
	}
	h.history.Checkpoint()
	if err := h.store.DeleteVendor(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete vendor")
	}
	return c.NoContent(http.StatusNoContent)
}
