package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SettingsService handles bridge configuration and API key management
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	gateway      GatewayFactory
	log          *logrus.Entry
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, gateway GatewayFactory) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		gateway:      gateway,
		log:          logrus.WithField("component", "settings"),
	}
}

// Get retrieves the settings, creating defaults if none exist yet
func (s *SettingsService) Get(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.StoreSettings{
			Environment: enum.EnvironmentStaging,
			InvoiceMode: enum.InvoiceModeManual,
			Locale:      "en_US",
			ShowWelcome: true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput carries partial settings updates. Nil fields are left
// untouched.
type UpdateSettingsInput struct {
	APIKey      *string
	InvoiceMode *string
	Environment *string
	Locale      *string
}

// UpdateSettings applies a partial update. Invalid enum values are rejected
// (case-sensitively) and the stored value is left unchanged.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.InvoiceMode != nil {
		mode := enum.InvoiceMode(*input.InvoiceMode)
		if !mode.IsValid() {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid invoice mode %q: must be \"automatic\" or \"manual\"", *input.InvoiceMode))
		}
		settings.InvoiceMode = mode
	}
	if input.Environment != nil {
		env := enum.Environment(*input.Environment)
		if !env.IsValid() {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid environment %q: must be \"staging\" or \"production\"", *input.Environment))
		}
		settings.Environment = env
	}
	if input.APIKey != nil {
		settings.APIKey = *input.APIKey
	}
	if input.Locale != nil && *input.Locale != "" {
		settings.Locale = *input.Locale
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetInvoiceMode updates the invoice mode only
func (s *SettingsService) SetInvoiceMode(ctx context.Context, mode string) error {
	_, err := s.UpdateSettings(ctx, &UpdateSettingsInput{InvoiceMode: &mode})
	return err
}

// IncrementTransactionCount bumps the lifetime invoice counter
func (s *SettingsService) IncrementTransactionCount(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	settings.TransactionCount++
	return s.settingsRepo.Update(ctx, settings)
}

// DismissWelcome marks the welcome screen as seen
func (s *SettingsService) DismissWelcome(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.ShowWelcome {
		return nil
	}
	settings.ShowWelcome = false
	return s.settingsRepo.Update(ctx, settings)
}

// ValidationResult is the outcome of an API key check
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateAPIKey checks a key against the invoicing API by listing accounts.
// On success the first account's id is captured into settings; invoice
// generation needs it later.
func (s *SettingsService) ValidateAPIKey(ctx context.Context, apiKey string) *ValidationResult {
	if apiKey == "" {
		return &ValidationResult{Valid: false, Message: "API key cannot be empty"}
	}
	if s.gateway == nil {
		return &ValidationResult{Valid: false, Message: "Invoicing client not available. Please check the service configuration."}
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return &ValidationResult{Valid: false, Message: fmt.Sprintf("API key validation failed: %s", err)}
	}

	gw := s.gateway(apiKey, settings.Environment)
	accounts, err := gw.ListAccounts(ctx, 1)
	if err != nil {
		s.log.WithError(err).Warn("API key validation failed")
		return &ValidationResult{Valid: false, Message: fmt.Sprintf("API key validation failed: %s", err)}
	}
	if len(accounts) == 0 {
		return &ValidationResult{Valid: false, Message: "No accounts found for this API key"}
	}

	account := accounts[0]
	settings.AccountID = strconv.FormatInt(account.ID, 10)
	settings.APIKey = apiKey
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return &ValidationResult{Valid: false, Message: fmt.Sprintf("API key validation failed: %s", err)}
	}

	return &ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("API key is valid. Using account: %s", account.Name),
	}
}
