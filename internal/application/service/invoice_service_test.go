package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/stretchr/testify/require"
)

func configuredSettings() *entity.StoreSettings {
	return &entity.StoreSettings{
		APIKey:      "test-key",
		AccountID:   "12345",
		Environment: enum.EnvironmentStaging,
		InvoiceMode: enum.InvoiceModeManual,
		Locale:      "en_US",
	}
}

func newInvoiceFixture(settings *entity.StoreSettings, orders ...*entity.Order) (*InvoiceService, *fakeOrderRepo, *fakeSettingsRepo, *fakeGateway) {
	orderRepo := newFakeOrderRepo(orders...)
	settingsRepo := &fakeSettingsRepo{settings: settings}
	gw := &fakeGateway{}
	settingsService := NewSettingsService(settingsRepo, gw.factory())
	svc := NewInvoiceService(orderRepo, settingsService, NewInvoiceProjector(0, "", ""), gw.factory())
	return svc, orderRepo, settingsRepo, gw
}

func TestGenerate_Success(t *testing.T) {
	order := testOrder()
	svc, orderRepo, settingsRepo, gw := newInvoiceFixture(configuredSettings(), order)

	result := svc.Generate(context.Background(), order.Number)

	require.True(t, result.Success)
	require.Equal(t, "Invoice generated successfully", result.Message)
	require.Equal(t, "987", result.InvoiceID)

	require.Equal(t, 1, gw.createCalls)
	require.Equal(t, 1, gw.sendCalls)
	require.Equal(t, "12345", gw.lastAccount)
	require.Equal(t, "test-key", gw.apiKey)

	require.True(t, order.HasInvoice())
	require.Equal(t, "987", order.InvoiceID)
	require.NotNil(t, order.InvoiceDate)

	require.Equal(t, int64(1), settingsRepo.settings.TransactionCount)
	require.Contains(t, orderRepo.notesFor(order.Number), "Invoice generated successfully. Invoice ID: 987")
}

func TestGenerate_OrderNotFound(t *testing.T) {
	svc, _, _, gw := newInvoiceFixture(configuredSettings())

	result := svc.Generate(context.Background(), 404)

	require.False(t, result.Success)
	require.Equal(t, "Order not found", result.Message)
	require.Zero(t, gw.createCalls)
}

func TestGenerate_AlreadyInvoiced(t *testing.T) {
	order := testOrder()
	order.InvoiceID = "111"
	svc, _, _, gw := newInvoiceFixture(configuredSettings(), order)

	result := svc.Generate(context.Background(), order.Number)

	require.False(t, result.Success)
	require.Equal(t, "Invoice already generated for this order", result.Message)
	require.Zero(t, gw.createCalls)
}

func TestGenerate_APIKeyNotConfigured(t *testing.T) {
	settings := configuredSettings()
	settings.APIKey = ""
	order := testOrder()
	svc, _, _, gw := newInvoiceFixture(settings, order)

	result := svc.Generate(context.Background(), order.Number)

	require.False(t, result.Success)
	require.Equal(t, "API key not configured", result.Message)
	require.Zero(t, gw.createCalls)
}

func TestGenerate_AccountIDNotConfigured(t *testing.T) {
	settings := configuredSettings()
	settings.AccountID = ""
	order := testOrder()
	svc, _, _, gw := newInvoiceFixture(settings, order)

	result := svc.Generate(context.Background(), order.Number)

	require.False(t, result.Success)
	require.Equal(t, "Account ID not configured. Please validate your API key.", result.Message)
	require.Zero(t, gw.createCalls)
}

func TestGenerate_CreateFails(t *testing.T) {
	order := testOrder()
	svc, orderRepo, settingsRepo, gw := newInvoiceFixture(configuredSettings(), order)
	gw.createErr = errors.New("Number has already been taken")

	result := svc.Generate(context.Background(), order.Number)

	require.False(t, result.Success)
	require.Equal(t, "Number has already been taken", result.Message)
	require.False(t, order.HasInvoice())
	require.Zero(t, gw.sendCalls)
	require.Zero(t, settingsRepo.settings.TransactionCount)
	require.Contains(t, orderRepo.notesFor(order.Number), "Invoice generation failed: Number has already been taken")
}

func TestGenerate_SendFailureKeepsInvoiceMetadata(t *testing.T) {
	order := testOrder()
	svc, _, settingsRepo, gw := newInvoiceFixture(configuredSettings(), order)
	gw.sendErr = errors.New("recipient unreachable")

	result := svc.Generate(context.Background(), order.Number)

	require.False(t, result.Success)
	require.Equal(t, "Invoice created but sending failed: recipient unreachable", result.Message)

	// The remote invoice exists, so the order stays marked as invoiced and
	// a retry is rejected instead of creating a duplicate.
	require.True(t, order.HasInvoice())
	require.Equal(t, "987", order.InvoiceID)
	require.Zero(t, settingsRepo.settings.TransactionCount)

	retry := svc.Generate(context.Background(), order.Number)
	require.False(t, retry.Success)
	require.Equal(t, "Invoice already generated for this order", retry.Message)
	require.Equal(t, 1, gw.createCalls)
}

func TestBulkGenerate(t *testing.T) {
	first := testOrder()
	third := testOrder()
	third.Number = 7
	svc, _, _, _ := newInvoiceFixture(configuredSettings(), first, third)

	success, failed := svc.BulkGenerate(context.Background(), []int64{first.Number, 404, third.Number})
	require.Equal(t, 2, success)
	require.Equal(t, 1, failed)
}

func TestHandleBulkAction_RedirectURL(t *testing.T) {
	first := testOrder()
	third := testOrder()
	third.Number = 7
	svc, _, _, _ := newInvoiceFixture(configuredSettings(), first, third)

	redirect, success, failed := svc.HandleBulkAction(context.Background(),
		"https://store.example.com/admin/orders", []int64{first.Number, 404, third.Number})

	require.Equal(t, 2, success)
	require.Equal(t, 1, failed)
	require.Contains(t, redirect, "bulk_success=2")
	require.Contains(t, redirect, "bulk_error=1")
}

func TestHandleOrderCompleted_ManualModeSkips(t *testing.T) {
	order := testOrder()
	svc, _, _, gw := newInvoiceFixture(configuredSettings(), order)

	svc.HandleOrderCompleted(context.Background(), order.Number)
	require.Zero(t, gw.createCalls)
}

func TestHandleOrderCompleted_MissingKeySkips(t *testing.T) {
	settings := configuredSettings()
	settings.InvoiceMode = enum.InvoiceModeAutomatic
	settings.APIKey = ""
	order := testOrder()
	svc, _, _, gw := newInvoiceFixture(settings, order)

	svc.HandleOrderCompleted(context.Background(), order.Number)
	require.Zero(t, gw.createCalls)
}

func TestHandleOrderCompleted_AlreadyInvoicedSkips(t *testing.T) {
	settings := configuredSettings()
	settings.InvoiceMode = enum.InvoiceModeAutomatic
	order := testOrder()
	order.InvoiceID = "111"
	svc, _, _, gw := newInvoiceFixture(settings, order)

	svc.HandleOrderCompleted(context.Background(), order.Number)
	require.Zero(t, gw.createCalls)
}

func TestHandleOrderCompleted_Generates(t *testing.T) {
	settings := configuredSettings()
	settings.InvoiceMode = enum.InvoiceModeAutomatic
	order := testOrder()
	svc, _, _, gw := newInvoiceFixture(settings, order)

	svc.HandleOrderCompleted(context.Background(), order.Number)
	require.Equal(t, 1, gw.createCalls)
	require.True(t, order.HasInvoice())
}

func TestHasInvoice(t *testing.T) {
	order := testOrder()
	order.InvoiceID = "111"
	svc, _, _, _ := newInvoiceFixture(configuredSettings(), order)

	has, err := svc.HasInvoice(context.Background(), order.Number)
	require.NoError(t, err)
	require.True(t, has)

	has, err = svc.HasInvoice(context.Background(), 404)
	require.NoError(t, err)
	require.False(t, has)
}
