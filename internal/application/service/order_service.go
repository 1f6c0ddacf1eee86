package service

import (
	"context"
	"math"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/pkg/apperror"
	"github.com/routerlabs/einvoice-bridge/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// OrderCompletedHandler is invoked after an order transitions to completed.
type OrderCompletedHandler func(ctx context.Context, orderNumber int64)

// OrderService ingests orders from the store platform and exposes the
// completion event other components subscribe to.
type OrderService struct {
	orderRepo       repository.OrderRepository
	completionHooks []OrderCompletedHandler
	log             *logrus.Entry
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		log:       logrus.WithField("component", "orders"),
	}
}

// OnOrderCompleted registers a handler fired when an order reaches the
// completed status. Handlers run synchronously within the ingesting request.
func (s *OrderService) OnOrderCompleted(fn OrderCompletedHandler) {
	s.completionHooks = append(s.completionHooks, fn)
}

// OrderItemInput is one line item in an order webhook
type OrderItemInput struct {
	Name     string
	Quantity int
	Subtotal float64
	Total    float64
	TaxTotal float64
}

// OrderWebhookInput is the order payload delivered by the store platform
type OrderWebhookInput struct {
	Number           int64
	Status           string
	Currency         string
	BillingFirstName string
	BillingLastName  string
	BillingCompany   string
	BillingEmail     string
	BillingCountry   string
	BillingAddress1  string
	BillingAddress2  string
	BillingCity      string
	BillingPostcode  string
	BillingVATNumber string
	ShippingTotal    float64
	ShippingTax      float64
	Items            []OrderItemInput
}

// IngestWebhook upserts an order from a platform webhook. New orders are
// stored in full; known orders only advance their status — order contents
// are owned by the platform and never rewritten here. A transition into the
// completed status fires the registered completion hooks.
func (s *OrderService) IngestWebhook(ctx context.Context, input *OrderWebhookInput) (*entity.Order, error) {
	if input.Number <= 0 {
		return nil, apperror.NewBadRequestError("Order number is required")
	}

	status := enum.ParseOrderStatus(input.Status)

	existing, err := s.orderRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		order := &entity.Order{
			Number:           input.Number,
			Status:           status,
			Currency:         input.Currency,
			BillingFirstName: input.BillingFirstName,
			BillingLastName:  input.BillingLastName,
			BillingCompany:   input.BillingCompany,
			BillingEmail:     input.BillingEmail,
			BillingCountry:   input.BillingCountry,
			BillingAddress1:  input.BillingAddress1,
			BillingAddress2:  input.BillingAddress2,
			BillingCity:      input.BillingCity,
			BillingPostcode:  input.BillingPostcode,
			BillingVATNumber: input.BillingVATNumber,
			ShippingTotal:    toCents(input.ShippingTotal),
			ShippingTax:      toCents(input.ShippingTax),
		}
		for _, item := range input.Items {
			order.Items = append(order.Items, entity.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Subtotal: toCents(item.Subtotal),
				Total:    toCents(item.Total),
				TaxTotal: toCents(item.TaxTotal),
			})
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"order_number": order.Number,
			"status":       order.Status.String(),
		}).Info("order ingested")

		if status == enum.OrderStatusCompleted {
			s.fireCompleted(ctx, order.Number)
		}
		return order, nil
	}

	wasCompleted := existing.Status == enum.OrderStatusCompleted
	if existing.Status != status {
		existing.Status = status
		if err := s.orderRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"order_number": existing.Number,
			"status":       status.String(),
		}).Info("order status updated")
	}

	if status == enum.OrderStatusCompleted && !wasCompleted {
		s.fireCompleted(ctx, existing.Number)
	}
	return existing, nil
}

func (s *OrderService) fireCompleted(ctx context.Context, orderNumber int64) {
	for _, hook := range s.completionHooks {
		hook(ctx, orderNumber)
	}
}

// GetOrder retrieves one order by its platform number
func (s *OrderService) GetOrder(ctx context.Context, number int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// OrderStats summarizes the order book for the dashboard
type OrderStats struct {
	TotalOrders    int64 `json:"total_orders"`
	InvoicedOrders int64 `json:"invoiced_orders"`
}

// Stats returns order counts for the dashboard
func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	invoiced, err := s.orderRepo.CountInvoiced(ctx)
	if err != nil {
		return nil, err
	}
	return &OrderStats{TotalOrders: total, InvoicedOrders: invoiced}, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
