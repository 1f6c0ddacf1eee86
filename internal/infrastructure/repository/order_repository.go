package repository

import (
	"context"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// GetByNumber retrieves an order with its items by platform order number
func (r *orderRepository) GetByNumber(ctx context.Context, number int64) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create creates a new order together with its items
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update updates an existing order
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// List retrieves orders with filtering and page-based pagination
func (r *orderRepository) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Invoiced != nil {
		if *params.Invoiced {
			query = query.Where("invoice_id <> ''")
		} else {
			query = query.Where("invoice_id = ''")
		}
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where(
			"billing_email ILIKE ? OR billing_company ILIKE ? OR invoice_number ILIKE ?",
			search, search, search,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := params.Pagination
	if p == nil {
		p = pagination.DefaultPagination()
	}
	p.Validate()

	var orders []entity.Order
	err := query.
		Preload("Items").
		Order("number DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// AddNote appends an audit note to an order
func (r *orderRepository) AddNote(ctx context.Context, note *entity.OrderNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Count returns the total number of orders
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).Count(&count).Error
	return count, err
}

// CountInvoiced returns the number of orders carrying an invoice id
func (r *orderRepository) CountInvoiced(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("invoice_id <> ''").
		Count(&count).Error
	return count, err
}
