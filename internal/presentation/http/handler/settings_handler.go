package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/request"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the bridge settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", gin.H{
		"account_id":         settings.AccountID,
		"environment":        settings.Environment,
		"invoice_mode":       settings.InvoiceMode,
		"locale":             settings.Locale,
		"transaction_count":  settings.TransactionCount,
		"show_welcome":       settings.ShowWelcome,
		"api_key_configured": settings.IsAPIKeyConfigured(),
	})
}

// UpdateSettings applies a partial settings update
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		APIKey:      req.APIKey,
		InvoiceMode: req.InvoiceMode,
		Environment: req.Environment,
		Locale:      req.Locale,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

// ValidateAPIKey checks an API key against the invoicing service
func (h *SettingsHandler) ValidateAPIKey(c *gin.Context) {
	var req request.ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := h.settingsService.ValidateAPIKey(c.Request.Context(), req.APIKey)
	if !result.Valid {
		response.Failure(c, result.Message, result)
		return
	}

	response.OK(c, result.Message, result)
}

// DismissWelcome marks the welcome screen as seen
func (h *SettingsHandler) DismissWelcome(c *gin.Context) {
	if err := h.settingsService.DismissWelcome(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Welcome screen dismissed", nil)
}
