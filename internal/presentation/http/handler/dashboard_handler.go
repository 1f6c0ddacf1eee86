package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/response"
)

// DashboardHandler serves the admin dashboard counters
type DashboardHandler struct {
	orderService    *service.OrderService
	settingsService *service.SettingsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(orderService *service.OrderService, settingsService *service.SettingsService) *DashboardHandler {
	return &DashboardHandler{
		orderService:    orderService,
		settingsService: settingsService,
	}
}

// GetStats returns order totals and the lifetime invoice counter
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", gin.H{
		"total_orders":      stats.TotalOrders,
		"invoiced_orders":   stats.InvoicedOrders,
		"transaction_count": settings.TransactionCount,
	})
}
