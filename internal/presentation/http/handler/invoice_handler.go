package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/request"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice generation HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	orderService   *service.OrderService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, orderService *service.OrderService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		orderService:   orderService,
	}
}

// Generate triggers invoice generation for a single order
func (h *InvoiceHandler) Generate(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid order number")
		return
	}

	result := h.invoiceService.Generate(c.Request.Context(), number)
	if !result.Success {
		response.Failure(c, result.Message, result)
		return
	}

	response.OK(c, result.Message, result)
}

// GetStatus reports the invoice state of an order
func (h *InvoiceHandler) GetStatus(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status retrieved successfully", gin.H{
		"order_number":   order.Number,
		"has_invoice":    order.HasInvoice(),
		"invoice_id":     order.InvoiceID,
		"invoice_number": order.InvoiceNumber,
		"invoice_date":   order.InvoiceDate,
	})
}

// BulkGenerate triggers invoice generation for a batch of orders
func (h *InvoiceHandler) BulkGenerate(c *gin.Context) {
	var req request.BulkGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	redirectTo := req.RedirectTo
	if redirectTo == "" {
		redirectTo = "/orders"
	}

	redirectURL, successCount, errorCount := h.invoiceService.HandleBulkAction(
		c.Request.Context(), redirectTo, req.OrderNumbers)

	response.OK(c, "Bulk invoice generation finished", gin.H{
		"success_count": successCount,
		"error_count":   errorCount,
		"redirect_url":  redirectURL,
	})
}
