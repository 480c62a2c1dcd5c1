package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// StoreUpdate carries the mutable store fields. Nil means "leave unchanged".
type StoreUpdate struct {
	Name         *string
	Description  *string
	ProductCount *int
	IsActive     *bool
}

// Empty reports whether no field is set.
func (u StoreUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.ProductCount == nil && u.IsActive == nil
}

// StoreRepository defines persistence for store records. Implementations must
// enforce unique name and unique owner_id at the storage layer: the service
// pre-checks are an optimization, and a race that slips past them has to be
// rejected by the index and surfaced as the matching Conflict error.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	FindByName(ctx context.Context, name string) (*domain.Store, error)
	FindByOwnerID(ctx context.Context, ownerID string) (*domain.Store, error)
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	Update(ctx context.Context, id string, update StoreUpdate) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
	// List returns one page ordered by creation time descending, plus the
	// total count under the same activeOnly filter. page is 1-based.
	List(ctx context.Context, page, size int, activeOnly bool) ([]*domain.Store, int64, error)
}
