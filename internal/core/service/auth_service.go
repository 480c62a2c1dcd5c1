package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login, token refresh and principal
// resolution on top of a user repository, the password hasher and the token
// service.
type AuthService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	tokens *TokenService
	logger zerolog.Logger

	// dummyDigest is compared against when the email is unknown so that a
	// failed login costs one bcrypt verification either way (no timing
	// signal revealing whether the account exists).
	dummyDigest string
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, tokens *TokenService, logger zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("marketplace.invalid")
	if err != nil {
		// bcrypt only fails on out-of-range cost, which the hasher clamps.
		panic("auth: hashing dummy digest: " + err.Error())
	}
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyDigest: dummy,
	}
}

// Register creates a new active user. The schema layer already validates
// password length and role; both checks are repeated here so the service is
// safe to call from any future entrypoint.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput.WithDetail("password must be at least 8 characters long")
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidInput.WithDetail("unknown role")
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:          input.Email,
		HashedPassword: digest,
		FullName:       input.FullName,
		Role:           input.Role,
		IsActive:       true,
		Phone:          input.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns a token pair. Unknown email and
// wrong password collapse into the same error; an inactive account is only
// reported after the password has been verified.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a bcrypt comparison so this path is not faster than a
			// wrong-password rejection.
			s.hasher.Verify(password, s.dummyDigest)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	pair, err := s.issuePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token is echoed back unchanged; callers must treat it as a
// long-lived bearer secret.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindRefresh {
		return nil, domain.ErrTokenWrongType
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrTokenPayloadInvalid
	}

	access, err := s.tokens.IssueAccess(claims.Subject, claims.Role)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// ResolvePrincipal maps a raw bearer token to an active user. Each failing
// step has its own error code; all of them render as 401.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindAccess {
		return nil, domain.ErrTokenWrongType
	}
	if claims.Subject == "" {
		return nil, domain.ErrTokenPayloadInvalid
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// Profile returns the account for id, rejecting missing or inactive users.
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's mutable fields.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("profile updated")
	return user, nil
}

func (s *AuthService) issuePair(userID string, role domain.Role) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(userID, role)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
