package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// CreateStoreInput carries all data needed to open a store.
type CreateStoreInput struct {
	Name         string
	Description  string
	ProductCount int
}

// ListStoresInput carries the parameters for the listing endpoint.
// IncludeInactive is granted by the transport layer to admin callers only.
type ListStoresInput struct {
	Page            int // 1-based
	Size            int // capped at 100 by the transport schema
	IncludeInactive bool
}

// ListStoresResult is one page of stores plus the total under the same filter.
type ListStoresResult struct {
	Items []*domain.Store
	Total int64
	Page  int
	Size  int
}

// StoreService defines the store ownership policy.
type StoreService interface {
	// Create opens a store for the acting vendor. Admins cannot create
	// stores on a vendor's behalf.
	Create(ctx context.Context, actor *domain.User, input CreateStoreInput) (*domain.Store, error)

	// Update applies a partial update; only the owner may call it, admins
	// included are not exempt. A changed name is re-checked for uniqueness.
	Update(ctx context.Context, id string, actor *domain.User, update StoreUpdate) (*domain.Store, error)

	// SetStatus toggles is_active without an ownership check. The admin-only
	// restriction is enforced by the route guard, not here.
	SetStatus(ctx context.Context, id string, isActive bool) (*domain.Store, error)

	// PublicProfile returns the store only when it exists and is active;
	// inactive stores are invisible to every caller, the owner included.
	PublicProfile(ctx context.Context, id string) (*domain.Store, error)

	// List returns a page ordered newest first.
	List(ctx context.Context, input ListStoresInput) (*ListStoresResult, error)

	// Delete removes the store. Admin-only by route guard.
	Delete(ctx context.Context, id string) error
}
