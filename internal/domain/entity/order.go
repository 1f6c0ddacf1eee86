package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is a commerce order ingested from the store platform. The bridge
// treats it as read-only except for the invoice metadata and audit notes it
// writes back after talking to the invoicing API.
type Order struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number    int64            `gorm:"uniqueIndex;not null" json:"number"`
	Status    enum.OrderStatus `gorm:"default:0" json:"status"`
	Currency  string           `gorm:"size:10;not null" json:"currency"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Billing contact
	BillingFirstName string `gorm:"size:100" json:"billing_first_name"`
	BillingLastName  string `gorm:"size:100" json:"billing_last_name"`
	BillingCompany   string `gorm:"size:255" json:"billing_company"`
	BillingEmail     string `gorm:"size:255" json:"billing_email"`
	BillingCountry   string `gorm:"size:2" json:"billing_country"`
	BillingAddress1  string `gorm:"size:255" json:"billing_address_1"`
	BillingAddress2  string `gorm:"size:255" json:"billing_address_2"`
	BillingCity      string `gorm:"size:100" json:"billing_city"`
	BillingPostcode  string `gorm:"size:20" json:"billing_postcode"`
	BillingVATNumber string `gorm:"size:50" json:"billing_vat_number"`

	ShippingTotal int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ShippingTax   int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	// Invoice metadata written after a successful generation. A non-empty
	// InvoiceID marks the order as invoiced and gates further attempts.
	InvoiceID     string     `gorm:"size:50;index" json:"invoice_id"`
	InvoiceNumber string     `gorm:"size:100" json:"invoice_number"`
	InvoiceDate   *time.Time `json:"invoice_date,omitempty"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Notes []OrderNote `gorm:"foreignKey:OrderID" json:"notes,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		ShippingTotal float64 `json:"shipping_total"`
		ShippingTax   float64 `json:"shipping_tax"`
		HasInvoice    bool    `json:"has_invoice"`
	}{
		Alias:         Alias(o),
		ShippingTotal: float64(o.ShippingTotal) / 100,
		ShippingTax:   float64(o.ShippingTax) / 100,
		HasInvoice:    o.HasInvoice(),
	})
}

// HasInvoice reports whether an invoice was already generated for the order.
func (o *Order) HasInvoice() bool {
	return o.InvoiceID != ""
}

// BillingName returns the contact name for invoicing, falling back to the
// company name when both personal name fields are empty.
func (o *Order) BillingName() string {
	name := o.BillingFirstName
	if o.BillingLastName != "" {
		if name != "" {
			name += " "
		}
		name += o.BillingLastName
	}
	if name == "" {
		return o.BillingCompany
	}
	return name
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Subtotal  int64          `gorm:"not null" json:"-"`  // Tax-exclusive subtotal in cents
	Total     int64          `gorm:"not null" json:"-"`  // Line total after discounts in cents
	TaxTotal  int64          `gorm:"default:0" json:"-"` // Summed line tax in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
		TaxTotal float64 `json:"tax_total"`
	}{
		Alias:    Alias(oi),
		Subtotal: float64(oi.Subtotal) / 100,
		Total:    float64(oi.Total) / 100,
		TaxTotal: float64(oi.TaxTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
