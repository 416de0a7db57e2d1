package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"rentledger/internal/documents"
	"rentledger/internal/metrics"
	"rentledger/internal/middleware"
	"rentledger/internal/store"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Store       *store.Store
	History     *store.History
	Metrics     *metrics.Service
	Blobs       documents.BlobStore
	Logger      zerolog.Logger
	TokenSecret string
}

// Register wires every route. Health probes are open; everything else sits
// behind the process-local bearer token.
func Register(e *echo.Echo, deps Deps) {
	health := NewHealthHandlers(deps.Store)
	e.GET("/health", health.Health)
	e.GET("/ready", health.Ready)

	v1 := e.Group("/v1", middleware.TokenGuard(deps.TokenSecret))

	properties := NewPropertyHandlers(deps.Store, deps.History)
	v1.GET("/properties", properties.ListProperties)
	v1.POST("/properties", properties.CreateProperty)
	v1.GET("/properties/:id", properties.GetProperty)
	v1.PATCH("/properties/:id", properties.UpdateProperty)
	v1.DELETE("/properties/:id", properties.DeleteProperty)
	v1.GET("/units", properties.ListUnits)
	v1.POST("/units", properties.CreateUnit)
	v1.GET("/units/:id", properties.GetUnit)
	v1.PATCH("/units/:id", properties.UpdateUnit)
	v1.DELETE("/units/:id", properties.DeleteUnit)

	tenants := NewTenantHandlers(deps.Store, deps.History)
	v1.GET("/tenants", tenants.ListTenants)
	v1.POST("/tenants", tenants.CreateTenant)
	v1.GET("/tenants/:id", tenants.GetTenant)
	v1.PATCH("/tenants/:id", tenants.UpdateTenant)
	v1.DELETE("/tenants/:id", tenants.DeleteTenant)
	v1.GET("/payments", tenants.ListPayments)
	v1.POST("/payments", tenants.CreatePayment)
	v1.PATCH("/payments/:id", tenants.UpdatePayment)
	v1.DELETE("/payments/:id", tenants.DeletePayment)
	v1.GET("/communication-logs", tenants.ListCommunicationLogs)
	v1.POST("/communication-logs", tenants.CreateCommunicationLog)
	v1.DELETE("/communication-logs/:id", tenants.DeleteCommunicationLog)

	expenses := NewExpenseHandlers(deps.Store, deps.History)
	v1.GET("/expenses", expenses.ListExpenses)
	v1.POST("/expenses", expenses.CreateExpense)
	v1.PATCH("/expenses/:id", expenses.UpdateExpense)
	v1.DELETE("/expenses/:id", expenses.DeleteExpense)
	v1.GET("/vendors", expenses.ListVendors)
	v1.POST("/vendors", expenses.CreateVendor)
	v1.PATCH("/vendors/:id", expenses.UpdateVendor)
	v1.DELETE("/vendors/:id", expenses.DeleteVendor)

	maintenance := NewMaintenanceHandlers(deps.Store, deps.History)
	v1.GET("/maintenance-requests", maintenance.ListRequests)
	v1.POST("/maintenance-requests", maintenance.CreateRequest)
	v1.GET("/maintenance-requests/:id", maintenance.GetRequest)
	v1.PATCH("/maintenance-requests/:id", maintenance.UpdateRequest)
	v1.DELETE("/maintenance-requests/:id", maintenance.DeleteRequest)
	v1.GET("/activity-logs", maintenance.ListActivityLogs)
	v1.POST("/activity-logs", maintenance.CreateActivityLog)
	v1.DELETE("/activity-logs/:id", maintenance.DeleteActivityLog)

	state := NewStateHandlers(deps.Store, deps.History)
	v1.GET("/state", state.GetState)
	v1.POST("/state/import", state.ImportState)
	v1.POST("/undo", state.Undo)
	v1.DELETE("/undo", state.ClearUndo)
	v1.POST("/sweep", state.Sweep)

	metricsHandlers := NewMetricsHandlers(deps.Metrics)
	v1.GET("/metrics/rent-roll", metricsHandlers.RentRoll)
	v1.GET("/metrics/profit-loss", metricsHandlers.ProfitLoss)
	v1.GET("/metrics/occupancy", metricsHandlers.Occupancy)
	v1.GET("/metrics/tenants/:id/reliability", metricsHandlers.Reliability)

	docs := NewDocumentHandlers(deps.Store, deps.History, deps.Blobs, deps.Logger)
	v1.GET("/documents", docs.ListDocuments)
	v1.POST("/documents", docs.Upload)
	v1.GET("/documents/:id/content", docs.Download)
	v1.GET("/documents/:id/url", docs.URL)
	v1.DELETE("/documents/:id", docs.Delete)
}
