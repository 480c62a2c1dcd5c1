package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

// StoreService enforces the store ownership policy: one store per vendor,
// globally unique names, owner-only updates, public reads of active stores.
type StoreService struct {
	repo   ports.StoreRepository
	logger zerolog.Logger
}

func NewStoreService(repo ports.StoreRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{repo: repo, logger: logger}
}

// Create opens a store for the acting vendor. The role check lives here and
// not only in the route guard: admins must not create stores on a vendor's
// behalf. The existence pre-checks are best-effort; the repository's unique
// indexes reject the losing side of a race with the same Conflict errors.
func (s *StoreService) Create(ctx context.Context, actor *domain.User, input ports.CreateStoreInput) (*domain.Store, error) {
	if actor.Role != domain.RoleVendor {
		return nil, domain.ErrVendorRoleRequired
	}

	if existing, err := s.repo.FindByOwnerID(ctx, actor.ID); err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrVendorHasStore
	}

	// Name collisions are case-sensitive, matching the storage schema.
	if existing, err := s.repo.FindByName(ctx, input.Name); err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrStoreNameTaken
	}

	store, err := s.repo.Create(ctx, &domain.Store{
		Name:         input.Name,
		Description:  input.Description,
		ProductCount: input.ProductCount,
		IsActive:     true,
		OwnerID:      actor.ID,
		Owner:        actor.Owner(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", store.ID).Str("owner_id", actor.ID).Msg("store created")
	return store, nil
}

// Update applies a partial update after an ownership check. Admins are not
// exempt on this path. A changed name is re-checked for global uniqueness.
func (s *StoreService) Update(ctx context.Context, id string, actor *domain.User, update ports.StoreUpdate) (*domain.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.ID {
		return nil, domain.ErrStoreNotOwned
	}

	if update.Empty() {
		return store, nil
	}

	if update.Name != nil && *update.Name != store.Name {
		if existing, err := s.repo.FindByName(ctx, *update.Name); err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrStoreNameTaken
		}
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", id).Msg("store updated")
	return updated, nil
}

// SetStatus toggles is_active with no ownership check; the admin-only
// restriction is the route guard's responsibility.
func (s *StoreService) SetStatus(ctx context.Context, id string, isActive bool) (*domain.Store, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, ports.StoreUpdate{IsActive: &isActive})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", id).Bool("is_active", isActive).Msg("store status changed")
	return updated, nil
}

// PublicProfile returns the store only when it exists and is active.
// Inactive stores are indistinguishable from missing ones on this path,
// regardless of who is asking.
func (s *StoreService) PublicProfile(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !store.IsActive {
		return nil, domain.ErrStoreNotFound
	}
	return store, nil
}

// List returns one page ordered by creation time descending.
func (s *StoreService) List(ctx context.Context, input ports.ListStoresInput) (*ports.ListStoresResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.Size
	if size < 1 {
		size = 20
	}

	items, total, err := s.repo.List(ctx, page, size, !input.IncludeInactive)
	if err != nil {
		return nil, err
	}

	return &ports.ListStoresResult{Items: items, Total: total, Page: page, Size: size}, nil
}

// Delete removes the store permanently.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("store_id", id).Msg("store deleted")
	return nil
}
