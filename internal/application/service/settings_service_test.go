package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/pkg/apperror"
	"github.com/routerlabs/einvoice-bridge/pkg/b2brouter"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (*SettingsService, *fakeSettingsRepo, *fakeGateway) {
	settingsRepo := &fakeSettingsRepo{}
	gw := &fakeGateway{}
	return NewSettingsService(settingsRepo, gw.factory()), settingsRepo, gw
}

func TestGet_CreatesDefaults(t *testing.T) {
	svc, settingsRepo, _ := newSettingsFixture()

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, enum.EnvironmentStaging, settings.Environment)
	require.Equal(t, enum.InvoiceModeManual, settings.InvoiceMode)
	require.Equal(t, "en_US", settings.Locale)
	require.True(t, settings.ShowWelcome)
	require.False(t, settings.IsAPIKeyConfigured())
	require.NotNil(t, settingsRepo.settings)
}

func TestUpdateSettings_InvoiceMode(t *testing.T) {
	svc, _, _ := newSettingsFixture()

	mode := "automatic"
	settings, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{InvoiceMode: &mode})
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceModeAutomatic, settings.InvoiceMode)
}

func TestUpdateSettings_RejectsUnknownMode(t *testing.T) {
	svc, _, _ := newSettingsFixture()

	require.NoError(t, svc.SetInvoiceMode(context.Background(), "automatic"))

	// Mode values are case-sensitive
	for _, mode := range []string{"Automatic", "AUTOMATIC", "instant", ""} {
		_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{InvoiceMode: &mode})
		require.Error(t, err)
		require.IsType(t, &apperror.AppError{}, err)
	}

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceModeAutomatic, settings.InvoiceMode)
}

func TestUpdateSettings_RejectsUnknownEnvironment(t *testing.T) {
	svc, _, _ := newSettingsFixture()

	env := "Production"
	_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{Environment: &env})
	require.Error(t, err)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, enum.EnvironmentStaging, settings.Environment)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	svc, _, _ := newSettingsFixture()

	key := "new-key"
	settings, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{APIKey: &key})
	require.NoError(t, err)
	require.Equal(t, "new-key", settings.APIKey)
	require.Equal(t, enum.InvoiceModeManual, settings.InvoiceMode)
	require.Equal(t, "en_US", settings.Locale)
}

func TestIncrementTransactionCount(t *testing.T) {
	svc, settingsRepo, _ := newSettingsFixture()

	require.NoError(t, svc.IncrementTransactionCount(context.Background()))
	require.NoError(t, svc.IncrementTransactionCount(context.Background()))
	require.Equal(t, int64(2), settingsRepo.settings.TransactionCount)
}

func TestDismissWelcome(t *testing.T) {
	svc, settingsRepo, _ := newSettingsFixture()

	require.NoError(t, svc.DismissWelcome(context.Background()))
	require.False(t, settingsRepo.settings.ShowWelcome)

	require.NoError(t, svc.DismissWelcome(context.Background()))
	require.False(t, settingsRepo.settings.ShowWelcome)
}

func TestValidateAPIKey_EmptyKey(t *testing.T) {
	svc, _, gw := newSettingsFixture()

	result := svc.ValidateAPIKey(context.Background(), "")
	require.False(t, result.Valid)
	require.Equal(t, "API key cannot be empty", result.Message)
	require.Zero(t, gw.listCalls)
}

func TestValidateAPIKey_Success(t *testing.T) {
	svc, settingsRepo, gw := newSettingsFixture()
	gw.accounts = []b2brouter.Account{{ID: 42, Name: "Acme Corp"}}

	result := svc.ValidateAPIKey(context.Background(), "fresh-key")
	require.True(t, result.Valid)
	require.Equal(t, "API key is valid. Using account: Acme Corp", result.Message)
	require.Equal(t, "fresh-key", gw.apiKey)

	require.Equal(t, "42", settingsRepo.settings.AccountID)
	require.Equal(t, "fresh-key", settingsRepo.settings.APIKey)
}

func TestValidateAPIKey_NoAccounts(t *testing.T) {
	svc, settingsRepo, _ := newSettingsFixture()

	result := svc.ValidateAPIKey(context.Background(), "fresh-key")
	require.False(t, result.Valid)
	require.Equal(t, "No accounts found for this API key", result.Message)
	require.Empty(t, settingsRepo.settings.APIKey)
}

func TestValidateAPIKey_GatewayError(t *testing.T) {
	svc, settingsRepo, gw := newSettingsFixture()
	gw.listErr = errors.New("Invalid API key")

	result := svc.ValidateAPIKey(context.Background(), "bad-key")
	require.False(t, result.Valid)
	require.Equal(t, "API key validation failed: Invalid API key", result.Message)
	require.Empty(t, settingsRepo.settings.APIKey)
}
