package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// TokenKind discriminates access tokens from refresh tokens. The kind claim
// is what stops a long-lived refresh token from being presented where an
// access token is required.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the decoded, verified payload of a bearer token.
type TokenClaims struct {
	Subject string
	Role    domain.Role
	Kind    TokenKind
}

// TokenService issues and validates signed, expiring bearer tokens. Validity
// is purely a function of signature and expiry; there is no server-side token
// state, so tokens cannot be revoked before they expire.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a TokenService signing with secret. Non-positive
// lifetimes fall back to 30 minutes (access) and 7 days (refresh).
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess signs a short-lived access token for the user.
func (s *TokenService) IssueAccess(userID string, role domain.Role) (string, error) {
	return s.issue(userID, role, TokenKindAccess, s.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefresh(userID string, role domain.Role) (string, error) {
	return s.issue(userID, role, TokenKindRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID string, role domain.Role, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"type": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Decode verifies signature and expiry and returns the parsed claims. Every
// cryptographic, structural, or expiry failure collapses into
// domain.ErrTokenInvalid; there is no partial trust in a token.
func (s *TokenService) Decode(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	kind, _ := claims["type"].(string)

	return &TokenClaims{
		Subject: sub,
		Role:    domain.Role(role),
		Kind:    TokenKind(kind),
	}, nil
}
