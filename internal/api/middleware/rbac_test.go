package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

func TestRequireRole_Allows(t *testing.T) {
	c, rec := newAuthContext("")
	c.Set(PrincipalKey, &domain.User{ID: "u1", Role: domain.RoleVendor})

	handler := RequireRole(domain.RoleVendor, domain.RoleAdmin)(okHandler)
	if err := handler(c); err != nil {
		t.Fatalf("vendor must pass a vendor-or-admin gate: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	c, _ := newAuthContext("")
	c.Set(PrincipalKey, &domain.User{ID: "u1", Role: domain.RoleCustomer})

	err := RequireRole(domain.RoleVendor)(okHandler)(c)
	if !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Status != http.StatusForbidden {
		t.Fatalf("role failures must be 403, got %v", err)
	}
}

// A request with no principal at all is an authentication failure, not an
// authorization one: 401 wins over 403.
func TestRequireRole_UnauthenticatedIs401(t *testing.T) {
	c, _ := newAuthContext("")

	err := RequireRole(domain.RoleAdmin)(okHandler)(c)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Status != http.StatusUnauthorized {
		t.Fatalf("missing principal must be 401, got %v", err)
	}
}

func TestRequireRole_ComposedAfterAuth(t *testing.T) {
	resolver := &stubResolver{user: &domain.User{ID: "u1", Role: domain.RoleCustomer, IsActive: true}}
	c, _ := newAuthContext("Bearer token")

	chain := Auth(resolver)(RequireRole(domain.RoleAdmin)(okHandler))
	err := chain(c)
	if !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("authenticated customer at an admin gate must get 403, got %v", err)
	}

	// Same chain without credentials stops at the auth layer.
	c2, _ := newAuthContext("")
	err = chain(c2)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("unauthenticated request must stop with 401, got %v", err)
	}
}

func TestRequireRole_EmptyAllowListForbidsEveryone(t *testing.T) {
	c, _ := newAuthContext("")
	c.Set(PrincipalKey, &domain.User{ID: "u1", Role: domain.RoleAdmin})

	if err := RequireRole()(okHandler)(c); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("empty allow list must forbid, got %v", err)
	}
}
