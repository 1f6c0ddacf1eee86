package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

// GenerationResult is the outcome of one invoice generation attempt. The
// workflow never fails with an error value; every failure is folded into a
// result with a human-readable message.
type GenerationResult struct {
	Success       bool   `json:"success"`
	InvoiceID     string `json:"invoice_id,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Message       string `json:"message"`
}

// InvoiceService drives the order-to-invoice workflow against the external
// invoicing API.
type InvoiceService struct {
	orderRepo       repository.OrderRepository
	settingsService *SettingsService
	projector       *InvoiceProjector
	gateway         GatewayFactory
	log             *logrus.Entry

	// Per-order locks closing the check-then-act window between the
	// idempotency read and the metadata write under concurrent triggers.
	locks sync.Map
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	orderRepo repository.OrderRepository,
	settingsService *SettingsService,
	projector *InvoiceProjector,
	gateway GatewayFactory,
) *InvoiceService {
	return &InvoiceService{
		orderRepo:       orderRepo,
		settingsService: settingsService,
		projector:       projector,
		gateway:         gateway,
		log:             logrus.WithField("component", "invoices"),
	}
}

func (s *InvoiceService) lockFor(orderNumber int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(orderNumber, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Generate creates and sends an invoice for the order with the given
// platform number. Each gate short-circuits into a failure result; there is
// no retry and a single attempt per invocation.
func (s *InvoiceService) Generate(ctx context.Context, orderNumber int64) *GenerationResult {
	mu := s.lockFor(orderNumber)
	mu.Lock()
	defer mu.Unlock()

	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return s.fail(ctx, nil, err.Error())
	}
	if order == nil {
		return s.fail(ctx, nil, "Order not found")
	}
	if order.HasInvoice() {
		return s.fail(ctx, order, "Invoice already generated for this order")
	}

	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return s.fail(ctx, order, err.Error())
	}
	if !settings.IsAPIKeyConfigured() {
		return s.fail(ctx, order, "API key not configured")
	}
	if settings.AccountID == "" {
		return s.fail(ctx, order, "Account ID not configured. Please validate your API key.")
	}
	if s.gateway == nil {
		return s.fail(ctx, order, "Invoicing client not available. Please check the service configuration.")
	}

	gw := s.gateway(settings.APIKey, settings.Environment)
	payload := s.projector.Project(order, settings.Locale, time.Now())

	record, err := gw.CreateInvoice(ctx, settings.AccountID, payload)
	if err != nil {
		return s.fail(ctx, order, err.Error())
	}

	// Persist invoice metadata before sending. A failed send then leaves
	// the order marked as invoiced instead of a dangling remote invoice
	// that a retry would duplicate.
	now := time.Now()
	order.InvoiceID = strconv.FormatInt(record.ID, 10)
	order.InvoiceNumber = record.Number
	order.InvoiceDate = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return s.fail(ctx, order, err.Error())
	}

	if err := gw.SendInvoice(ctx, record.ID); err != nil {
		return s.fail(ctx, order, fmt.Sprintf("Invoice created but sending failed: %s", err))
	}

	s.note(ctx, order, fmt.Sprintf("Invoice generated successfully. Invoice ID: %s", order.InvoiceID))
	if err := s.settingsService.IncrementTransactionCount(ctx); err != nil {
		s.log.WithError(err).Warn("failed to increment transaction counter")
	}

	s.log.WithFields(logrus.Fields{
		"order_number":   orderNumber,
		"invoice_id":     order.InvoiceID,
		"invoice_number": order.InvoiceNumber,
	}).Info("invoice generated")

	return &GenerationResult{
		Success:       true,
		InvoiceID:     order.InvoiceID,
		InvoiceNumber: order.InvoiceNumber,
		Message:       "Invoice generated successfully",
	}
}

// HandleOrderCompleted is the automatic-mode trigger, registered as an
// order-completion hook. Generation fires only when the mode is automatic,
// an API key is configured and the order has no invoice yet.
func (s *InvoiceService) HandleOrderCompleted(ctx context.Context, orderNumber int64) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load settings on order completion")
		return
	}
	if settings.InvoiceMode != enum.InvoiceModeAutomatic {
		return
	}
	if !settings.IsAPIKeyConfigured() {
		return
	}

	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil || order == nil {
		return
	}
	if order.HasInvoice() {
		return
	}

	result := s.Generate(ctx, orderNumber)
	if !result.Success {
		s.log.WithFields(logrus.Fields{
			"order_number": orderNumber,
			"message":      result.Message,
		}).Warn("automatic invoice generation failed")
	}
}

// BulkGenerate runs generation strictly sequentially over the given order
// numbers and returns the success and failure counts.
func (s *InvoiceService) BulkGenerate(ctx context.Context, orderNumbers []int64) (successCount, errorCount int) {
	for _, number := range orderNumbers {
		if result := s.Generate(ctx, number); result.Success {
			successCount++
		} else {
			errorCount++
		}
	}
	return successCount, errorCount
}

// HandleBulkAction runs a bulk generation and appends the resulting counts
// to the redirect URL as bulk_success / bulk_error query parameters.
func (s *InvoiceService) HandleBulkAction(ctx context.Context, redirectTo string, orderNumbers []int64) (string, int, int) {
	successCount, errorCount := s.BulkGenerate(ctx, orderNumbers)

	u, err := url.Parse(redirectTo)
	if err != nil {
		return redirectTo, successCount, errorCount
	}
	q := u.Query()
	q.Set("bulk_success", strconv.Itoa(successCount))
	q.Set("bulk_error", strconv.Itoa(errorCount))
	u.RawQuery = q.Encode()

	return u.String(), successCount, errorCount
}

// HasInvoice reports whether the order already carries an invoice id.
func (s *InvoiceService) HasInvoice(ctx context.Context, orderNumber int64) (bool, error) {
	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, nil
	}
	return order.HasInvoice(), nil
}

// fail logs the failure, records it on the order when one was resolved and
// folds it into a result.
func (s *InvoiceService) fail(ctx context.Context, order *entity.Order, message string) *GenerationResult {
	s.log.WithField("message", message).Warn("invoice generation failed")
	if order != nil {
		s.note(ctx, order, fmt.Sprintf("Invoice generation failed: %s", message))
	}
	return &GenerationResult{Success: false, Message: message}
}

func (s *InvoiceService) note(ctx context.Context, order *entity.Order, text string) {
	err := s.orderRepo.AddNote(ctx, &entity.OrderNote{
		OrderID: order.ID,
		Note:    text,
	})
	if err != nil {
		s.log.WithError(err).Warn("failed to record order note")
	}
}
