package service

import (
	"fmt"
	"time"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/pkg/b2brouter"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var oneHundred = decimal.NewFromInt(100)

// InvoiceProjector maps an order to the invoice payload expected by the
// invoicing API. Projection is pure: no I/O, no side effects, the clock is
// passed in.
type InvoiceProjector struct {
	dueDays     int
	taxName     string
	taxCategory string
}

// NewInvoiceProjector creates a projector. Zero/empty arguments fall back to
// a 30 day due period and the standard-rate VAT tax block.
func NewInvoiceProjector(dueDays int, taxName, taxCategory string) *InvoiceProjector {
	if dueDays <= 0 {
		dueDays = 30
	}
	if taxName == "" {
		taxName = "IVA"
	}
	if taxCategory == "" {
		taxCategory = "S"
	}
	return &InvoiceProjector{
		dueDays:     dueDays,
		taxName:     taxName,
		taxCategory: taxCategory,
	}
}

// Project builds the invoice-creation payload for an order. The locale
// supplies the invoice language (its first two characters) and now supplies
// the issue date.
func (p *InvoiceProjector) Project(order *entity.Order, locale string, now time.Time) *b2brouter.Invoice {
	contact := b2brouter.Contact{
		Name:       order.BillingName(),
		Email:      order.BillingEmail,
		Country:    order.BillingCountry,
		Address:    order.BillingAddress1,
		City:       order.BillingCity,
		PostalCode: order.BillingPostcode,
	}
	if order.BillingAddress2 != "" {
		contact.Address += ", " + order.BillingAddress2
	}
	if order.BillingVATNumber != "" {
		contact.TinValue = order.BillingVATNumber
	}

	lines := make([]b2brouter.InvoiceLine, 0, len(order.Items)+1)
	for i := range order.Items {
		item := &order.Items[i]
		line := b2brouter.InvoiceLine{
			Description: item.Name,
			Quantity:    item.Quantity,
			Price:       unitPrice(item),
		}
		if rate := p.ItemTaxRate(item); rate.IsPositive() {
			line.Taxes = p.taxBlock(rate)
		}
		lines = append(lines, line)
	}

	if order.ShippingTotal > 0 {
		shipping := b2brouter.InvoiceLine{
			Description: "Shipping",
			Quantity:    1,
			Price:       centsToAmount(order.ShippingTotal),
		}
		if rate := p.ShippingTaxRate(order); rate.IsPositive() {
			shipping.Taxes = p.taxBlock(rate)
		}
		lines = append(lines, shipping)
	}

	return &b2brouter.Invoice{
		Number:       p.InvoiceNumber(order, now),
		Date:         now.Format(dateLayout),
		DueDate:      now.AddDate(0, 0, p.dueDays).Format(dateLayout),
		Currency:     order.Currency,
		Language:     languageFromLocale(locale),
		Contact:      contact,
		InvoiceLines: lines,
		ExtraInfo:    fmt.Sprintf("Store order #%d", order.Number),
	}
}

// InvoiceNumber synthesizes the invoice number for an order, e.g.
// "INV-US-2025-00005".
func (p *InvoiceProjector) InvoiceNumber(order *entity.Order, now time.Time) string {
	return fmt.Sprintf("INV-%s-%d-%05d", order.BillingCountry, now.Year(), order.Number)
}

// ItemTaxRate computes the effective tax percentage of a line item, rounded
// to two decimal places. Items with a non-positive total yield zero.
func (p *InvoiceProjector) ItemTaxRate(item *entity.OrderItem) decimal.Decimal {
	if item.Total <= 0 || item.TaxTotal == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(item.TaxTotal).
		Div(decimal.NewFromInt(item.Total)).
		Mul(oneHundred).
		Round(2)
}

// ShippingTaxRate computes the effective tax percentage of the shipping
// charge, rounded to two decimal places.
func (p *InvoiceProjector) ShippingTaxRate(order *entity.Order) decimal.Decimal {
	if order.ShippingTotal <= 0 || order.ShippingTax <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(order.ShippingTax).
		Div(decimal.NewFromInt(order.ShippingTotal)).
		Mul(oneHundred).
		Round(2)
}

func (p *InvoiceProjector) taxBlock(rate decimal.Decimal) []b2brouter.Tax {
	return []b2brouter.Tax{{
		Name:     p.taxName,
		Category: p.taxCategory,
		Percent:  rate.InexactFloat64(),
	}}
}

// unitPrice derives the tax-exclusive unit price from the line subtotal,
// unrounded.
func unitPrice(item *entity.OrderItem) float64 {
	if item.Quantity <= 0 {
		return centsToAmount(item.Subtotal)
	}
	return decimal.NewFromInt(item.Subtotal).
		Div(oneHundred).
		Div(decimal.NewFromInt(int64(item.Quantity))).
		InexactFloat64()
}

func centsToAmount(cents int64) float64 {
	return decimal.NewFromInt(cents).Div(oneHundred).InexactFloat64()
}

func languageFromLocale(locale string) string {
	if len(locale) < 2 {
		return locale
	}
	return locale[:2]
}
