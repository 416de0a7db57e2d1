package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rentledger/internal/metrics"
)

// MetricsHandlers serves the derived figures the dashboard renders.
type MetricsHandlers struct {
	metrics *metrics.Service
}

func NewMetricsHandlers(svc *metrics.Service) *MetricsHandlers {
	return &MetricsHandlers{metrics: svc}
}

// RentRoll returns expected vs collected rent for ?month=YYYY-MM, default
// the current month.
func (h *MetricsHandlers) RentRoll(c echo.Context) error {
	month := time.Now().UTC()
	if m := c.QueryParam("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be YYYY-MM")
		}
		month = parsed
	}
	roll, err := h.metrics.RentRoll(c.Request().Context(), month)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute rent roll")
	}
	return c.JSON(http.StatusOK, roll)
}

// ProfitLoss returns income minus expenses for ?from and ?to (YYYY-MM-DD),
// default the current calendar year.
func (h *MetricsHandlers) ProfitLoss(c echo.Context) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	to := now
	if f := c.QueryParam("from"); f != "" {
		parsed, err := time.Parse("2006-01-02", f)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if t := c.QueryParam("to"); t != "" {
		parsed, err := time.Parse("2006-01-02", t)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = parsed
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to precedes from")
	}
	pl, err := h.metrics.ProfitLoss(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute profit and loss")
	}
	return c.JSON(http.StatusOK, pl)
}

func (h *MetricsHandlers) Occupancy(c echo.Context) error {
	occ, err := h.metrics.Occupancy(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute occupancy")
	}
	return c.JSON(http.StatusOK, occ)
}

func (h *MetricsHandlers) Reliability(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tenant id")
	}
	rel, err := h.metrics.Reliability(c.Request().Context(), tenantID, time.Now().UTC())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute reliability")
	}
	return c.JSON(http.StatusOK, rel)
}
