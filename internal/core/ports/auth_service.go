package ports

import (
	"context"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, and token lifecycle.
type AuthService interface {
	// Register creates a new account. role defaults to "user" when empty.
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	// Login verifies credentials and issues an access/refresh token pair.
	// Unknown email and wrong password fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
