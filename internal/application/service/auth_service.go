package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/routerlabs/einvoice-bridge/internal/config"
	"github.com/routerlabs/einvoice-bridge/pkg/apperror"
	"github.com/routerlabs/einvoice-bridge/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single admin operator configured via the
// environment and issues access tokens for the admin API.
type AuthService struct {
	admin      config.AdminConfig
	jwtManager *utils.JWTManager
	adminID    uuid.UUID
}

// NewAuthService creates a new auth service
func NewAuthService(admin config.AdminConfig, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		admin:      admin,
		jwtManager: jwtManager,
		adminID:    uuid.New(),
	}
}

// Login checks the admin credentials and returns an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.admin.PasswordHash == "" {
		return "", apperror.NewAppError(503, "Admin credentials are not configured")
	}
	if email != s.admin.Email {
		return "", apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return "", apperror.ErrInvalidCredentials
	}

	return s.jwtManager.GenerateAccessToken(s.adminID, email, []string{"admin"})
}
