package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/request"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates the admin operator and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{"access_token": token})
}
