package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
	Phone    string
}

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines registration, login and principal resolution.
type AuthService interface {
	// Register creates a new active user. The plaintext password is hashed
	// and never stored or echoed back.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies credentials and returns an access/refresh token pair.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token itself is returned unchanged (no rotation).
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ResolvePrincipal maps a raw access token to an active user, or one of
	// the Unauthorized variants.
	ResolvePrincipal(ctx context.Context, token string) (*domain.User, error)

	// Profile returns the user for id, rejecting missing or inactive accounts.
	Profile(ctx context.Context, id string) (*domain.User, error)

	// UpdateProfile applies a partial profile update to the user.
	UpdateProfile(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
}
