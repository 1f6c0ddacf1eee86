package service

import (
	"context"
	"testing"

	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/stretchr/testify/require"
)

func webhookInput(number int64, status string) *OrderWebhookInput {
	return &OrderWebhookInput{
		Number:           number,
		Status:           status,
		Currency:         "USD",
		BillingFirstName: "Jane",
		BillingLastName:  "Doe",
		BillingCountry:   "US",
		ShippingTotal:    4.99,
		Items: []OrderItemInput{
			{Name: "Widget", Quantity: 2, Subtotal: 20.00, Total: 20.00, TaxTotal: 3.00},
		},
	}
}

func TestIngestWebhook_CreatesOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo)

	order, err := svc.IngestWebhook(context.Background(), webhookInput(10, "processing"))
	require.NoError(t, err)
	require.Equal(t, int64(10), order.Number)
	require.Equal(t, enum.OrderStatusProcessing, order.Status)
	require.Equal(t, int64(499), order.ShippingTotal)

	require.Len(t, order.Items, 1)
	require.Equal(t, int64(2000), order.Items[0].Subtotal)
	require.Equal(t, int64(300), order.Items[0].TaxTotal)
}

func TestIngestWebhook_RejectsMissingNumber(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())

	_, err := svc.IngestWebhook(context.Background(), webhookInput(0, "processing"))
	require.Error(t, err)
}

func TestIngestWebhook_StatusUpdateOnly(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo)

	_, err := svc.IngestWebhook(context.Background(), webhookInput(10, "processing"))
	require.NoError(t, err)

	// A later webhook only advances the status; order contents stay as
	// first ingested.
	update := webhookInput(10, "completed")
	update.BillingFirstName = "Changed"
	order, err := svc.IngestWebhook(context.Background(), update)
	require.NoError(t, err)
	require.Equal(t, enum.OrderStatusCompleted, order.Status)
	require.Equal(t, "Jane", order.BillingFirstName)
}

func TestIngestWebhook_FiresCompletionHook(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())

	var completed []int64
	svc.OnOrderCompleted(func(ctx context.Context, orderNumber int64) {
		completed = append(completed, orderNumber)
	})

	_, err := svc.IngestWebhook(context.Background(), webhookInput(10, "processing"))
	require.NoError(t, err)
	require.Empty(t, completed)

	_, err = svc.IngestWebhook(context.Background(), webhookInput(10, "completed"))
	require.NoError(t, err)
	require.Equal(t, []int64{10}, completed)

	// Replayed completion webhooks do not fire the hook again
	_, err = svc.IngestWebhook(context.Background(), webhookInput(10, "completed"))
	require.NoError(t, err)
	require.Len(t, completed, 1)
}

func TestIngestWebhook_FiresHookWhenCreatedCompleted(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())

	var calls int
	svc.OnOrderCompleted(func(ctx context.Context, orderNumber int64) { calls++ })

	_, err := svc.IngestWebhook(context.Background(), webhookInput(10, "completed"))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())

	_, err := svc.GetOrder(context.Background(), 404)
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	invoiced := testOrder()
	invoiced.InvoiceID = "111"
	plain := testOrder()
	plain.Number = 6
	svc := NewOrderService(newFakeOrderRepo(invoiced, plain))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalOrders)
	require.Equal(t, int64(1), stats.InvoicedOrders)
}
