package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront API"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-with-enough-length",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func newTestService(t *testing.T) (*Service, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := testConfig()
	return NewService(db, cfg), cfg
}

func seedAdmin(t *testing.T, svc *Service, cfg *config.Config, email, password string, active bool) User {
	t.Helper()

	hash, err := auth.NewPasswordManager(cfg).HashPassword(password)
	require.NoError(t, err)

	user := User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Store Admin",
		IsActive:     active,
	}
	require.NoError(t, svc.db.Create(&user).Error)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, cfg := newTestService(t)
	seedAdmin(t, svc, cfg, "admin@example.com", "ChangeMe!2024", true)

	resp, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "ChangeMe!2024"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@example.com", resp.User.Email)
	assert.NotNil(t, resp.User.LastLoginAt)

	claims, err := auth.NewJWTManager(cfg).ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, cfg := newTestService(t)
	seedAdmin(t, svc, cfg, "admin@example.com", "ChangeMe!2024", true)

	_, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "guessing"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "whatever99"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, cfg := newTestService(t)
	seedAdmin(t, svc, cfg, "admin@example.com", "ChangeMe!2024", false)

	// Disabled accounts get the same error as bad credentials
	_, err := svc.Login(&LoginRequest{Email: "admin@example.com", Password: "ChangeMe!2024"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
