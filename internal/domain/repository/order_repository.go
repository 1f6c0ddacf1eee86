package repository

import (
	"context"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/pkg/pagination"
)

// OrderFilterParams carries filtering and pagination options for listings
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	Invoiced   *bool // filter by presence of an invoice id
	Search     string
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	GetByNumber(ctx context.Context, number int64) (*entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	AddNote(ctx context.Context, note *entity.OrderNote) error
	Count(ctx context.Context) (int64, error)
	CountInvoiced(ctx context.Context) (int64, error)
}
