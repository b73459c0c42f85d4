// internal/domain/admin/service.go
package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for unknown accounts, wrong passwords
// and disabled accounts alike, so login responses do not leak which one it was
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles back-office authentication
type Service struct {
	db              *gorm.DB
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new admin service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// LoginRequest represents admin login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and account details
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login verifies credentials and issues a session token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var user User
	result := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin account: %w", result.Error)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err == nil {
		user.LastLoginAt = &now
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
