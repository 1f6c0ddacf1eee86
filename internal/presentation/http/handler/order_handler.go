package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/request"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/response"
	"github.com/routerlabs/einvoice-bridge/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// IngestWebhook receives an order payload from the store platform
func (h *OrderHandler) IngestWebhook(c *gin.Context) {
	var req request.OrderWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
			Total:    item.Total,
			TaxTotal: item.TaxTotal,
		})
	}

	order, err := h.orderService.IngestWebhook(c.Request.Context(), &service.OrderWebhookInput{
		Number:           req.Number,
		Status:           req.Status,
		Currency:         req.Currency,
		BillingFirstName: req.BillingFirstName,
		BillingLastName:  req.BillingLastName,
		BillingCompany:   req.BillingCompany,
		BillingEmail:     req.BillingEmail,
		BillingCountry:   req.BillingCountry,
		BillingAddress1:  req.BillingAddress1,
		BillingAddress2:  req.BillingAddress2,
		BillingCity:      req.BillingCity,
		BillingPostcode:  req.BillingPostcode,
		BillingVATNumber: req.BillingVATNumber,
		ShippingTotal:    req.ShippingTotal,
		ShippingTax:      req.ShippingTax,
		Items:            items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order ingested successfully", order)
}

// List handles listing orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ParseOrderStatus(statusStr)
		params.Status = &status
	}
	if invoicedStr := c.Query("invoiced"); invoicedStr != "" {
		invoiced := invoicedStr == "true"
		params.Invoiced = &invoiced
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get retrieves one order by its platform number
func (h *OrderHandler) Get(c *gin.Context) {
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

	response.OK(c, "Order retrieved successfully", order)
}
