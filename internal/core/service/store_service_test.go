package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type stubStoreRepo struct {
	stores map[string]*domain.Store
	nextID int
	seq    int // creation order stand-in for timestamps
	order  map[string]int
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{
		stores: make(map[string]*domain.Store),
		order:  make(map[string]int),
	}
}

func cloneStore(s *domain.Store) *domain.Store {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubStoreRepo) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	for _, s := range r.stores {
		if s.Name == store.Name {
			return nil, domain.ErrStoreNameTaken
		}
		if s.OwnerID == store.OwnerID {
			return nil, domain.ErrVendorHasStore
		}
	}
	r.nextID++
	r.seq++
	s := cloneStore(store)
	s.ID = fmt.Sprintf("store-%d", r.nextID)
	r.stores[s.ID] = s
	r.order[s.ID] = r.seq
	return cloneStore(s), nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	if s, ok := r.stores[id]; ok {
		return cloneStore(s), nil
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) FindByName(_ context.Context, name string) (*domain.Store, error) {
	for _, s := range r.stores {
		if s.Name == name {
			return cloneStore(s), nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) FindByOwnerID(_ context.Context, ownerID string) (*domain.Store, error) {
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			return cloneStore(s), nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) Update(_ context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	if update.Name != nil {
		for _, other := range r.stores {
			if other.ID != id && other.Name == *update.Name {
				return nil, domain.ErrStoreNameTaken
			}
		}
		s.Name = *update.Name
	}
	if update.Description != nil {
		s.Description = *update.Description
	}
	if update.ProductCount != nil {
		s.ProductCount = *update.ProductCount
	}
	if update.IsActive != nil {
		s.IsActive = *update.IsActive
	}
	return cloneStore(s), nil
}

func (r *stubStoreRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(r.stores, id)
	return nil
}

func (r *stubStoreRepo) List(_ context.Context, page, size int, activeOnly bool) ([]*domain.Store, int64, error) {
	var all []*domain.Store
	for _, s := range r.stores {
		if activeOnly && !s.IsActive {
			continue
		}
		all = append(all, cloneStore(s))
	}
	sort.Slice(all, func(i, j int) bool {
		return r.order[all[i].ID] > r.order[all[j].ID]
	})

	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func vendor(id string) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "Vendor " + id,
		Role:     domain.RoleVendor,
		IsActive: true,
	}
}

func TestStoreService_Create_Success(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	actor := vendor("v1")
	store, err := svc.Create(context.Background(), actor, ports.CreateStoreInput{
		Name:        "Acme",
		Description: "general store",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if store.OwnerID != "v1" || !store.IsActive {
		t.Fatalf("unexpected store: %+v", store)
	}
	if store.Owner.Email != actor.Email {
		t.Fatalf("expected owner info on the created store, got %+v", store.Owner)
	}
}

func TestStoreService_Create_RoleRestriction(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	customer := &domain.User{ID: "c1", Role: domain.RoleCustomer, IsActive: true}
	if _, err := svc.Create(context.Background(), customer, ports.CreateStoreInput{Name: "Nope"}); !errors.Is(err, domain.ErrVendorRoleRequired) {
		t.Fatalf("expected ErrVendorRoleRequired for customer, got %v", err)
	}

	// Admins cannot create stores on a vendor's behalf either.
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	if _, err := svc.Create(context.Background(), admin, ports.CreateStoreInput{Name: "Nope"}); !errors.Is(err, domain.ErrVendorRoleRequired) {
		t.Fatalf("expected ErrVendorRoleRequired for admin, got %v", err)
	}
}

func TestStoreService_Create_OneStorePerVendor(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	actor := vendor("v1")
	if _, err := svc.Create(context.Background(), actor, ports.CreateStoreInput{Name: "First"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, ports.CreateStoreInput{Name: "Second"}); !errors.Is(err, domain.ErrVendorHasStore) {
		t.Fatalf("expected ErrVendorHasStore, got %v", err)
	}
}

func TestStoreService_Create_NameTaken(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	if _, err := svc.Create(context.Background(), vendor("v1"), ports.CreateStoreInput{Name: "Acme"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), vendor("v2"), ports.CreateStoreInput{Name: "Acme"}); !errors.Is(err, domain.ErrStoreNameTaken) {
		t.Fatalf("expected ErrStoreNameTaken, got %v", err)
	}
}

func TestStoreService_Update_OwnershipRequired(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	store, _ := svc.Create(context.Background(), vendor("v1"), ports.CreateStoreInput{Name: "Acme"})

	desc := "hijacked"
	if _, err := svc.Update(context.Background(), store.ID, vendor("v2"), ports.StoreUpdate{Description: &desc}); !errors.Is(err, domain.ErrStoreNotOwned) {
		t.Fatalf("expected ErrStoreNotOwned, got %v", err)
	}

	// Admins get no exemption on this path.
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	if _, err := svc.Update(context.Background(), store.ID, admin, ports.StoreUpdate{Description: &desc}); !errors.Is(err, domain.ErrStoreNotOwned) {
		t.Fatalf("expected ErrStoreNotOwned for admin, got %v", err)
	}
}

func TestStoreService_Update_Partial(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	actor := vendor("v1")
	store, _ := svc.Create(context.Background(), actor, ports.CreateStoreInput{
		Name: "Acme", Description: "original", ProductCount: 3,
	})

	count := 7
	updated, err := svc.Update(context.Background(), store.ID, actor, ports.StoreUpdate{ProductCount: &count})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ProductCount != 7 {
		t.Fatalf("product count not applied: %+v", updated)
	}
	if updated.Name != "Acme" || updated.Description != "original" {
		t.Fatalf("untouched fields must be preserved: %+v", updated)
	}

	// Empty update is a no-op returning the current state.
	same, err := svc.Update(context.Background(), store.ID, actor, ports.StoreUpdate{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if same.ProductCount != 7 {
		t.Fatalf("empty update must not change anything: %+v", same)
	}
}

func TestStoreService_Update_RenameCollision(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	actor := vendor("v1")
	store, _ := svc.Create(context.Background(), actor, ports.CreateStoreInput{Name: "Acme"})
	_, _ = svc.Create(context.Background(), vendor("v2"), ports.CreateStoreInput{Name: "Globex"})

	taken := "Globex"
	if _, err := svc.Update(context.Background(), store.ID, actor, ports.StoreUpdate{Name: &taken}); !errors.Is(err, domain.ErrStoreNameTaken) {
		t.Fatalf("expected ErrStoreNameTaken on rename collision, got %v", err)
	}

	// Re-submitting the current name is not a collision.
	current := "Acme"
	if _, err := svc.Update(context.Background(), store.ID, actor, ports.StoreUpdate{Name: &current}); err != nil {
		t.Fatalf("same-name update failed: %v", err)
	}
}

func TestStoreService_PublicProfile_HidesInactive(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	store, _ := svc.Create(context.Background(), vendor("v1"), ports.CreateStoreInput{Name: "Acme"})

	if _, err := svc.PublicProfile(context.Background(), store.ID); err != nil {
		t.Fatalf("active store must be visible: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), store.ID, false); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	// Inactive stores look missing to everyone, the owner included.
	if _, err := svc.PublicProfile(context.Background(), store.ID); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for inactive store, got %v", err)
	}
}

func TestStoreService_SetStatus_NotFound(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	if _, err := svc.SetStatus(context.Background(), "missing", true); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestStoreService_List_FilterAndPaging(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	for i := 1; i <= 5; i++ {
		_, err := svc.Create(context.Background(), vendor(fmt.Sprintf("v%d", i)), ports.CreateStoreInput{
			Name: fmt.Sprintf("Store %d", i),
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}
	s3, _ := repo.FindByName(context.Background(), "Store 3")
	if _, err := svc.SetStatus(context.Background(), s3.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	public, err := svc.List(context.Background(), ports.ListStoresInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if public.Total != 4 || len(public.Items) != 4 {
		t.Fatalf("expected 4 active stores, got total=%d items=%d", public.Total, len(public.Items))
	}
	// Newest first.
	if public.Items[0].Name != "Store 5" {
		t.Fatalf("expected newest store first, got %s", public.Items[0].Name)
	}

	all, err := svc.List(context.Background(), ports.ListStoresInput{Page: 1, Size: 2, IncludeInactive: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all.Total != 5 || len(all.Items) != 2 {
		t.Fatalf("expected total=5 with a 2-item page, got total=%d items=%d", all.Total, len(all.Items))
	}
}

func TestStoreService_Delete(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, testLogger())

	store, _ := svc.Create(context.Background(), vendor("v1"), ports.CreateStoreInput{Name: "Acme"})
	if err := svc.Delete(context.Background(), store.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), store.ID); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound on second delete, got %v", err)
	}
}

// TestVendorOnboardingScenario walks the full journey: register a vendor, log
// in, open a store, then hit the one-store-per-vendor limit.
func TestVendorOnboardingScenario(t *testing.T) {
	userRepo := newStubUserRepo()
	storeRepo := newStubStoreRepo()
	authSvc := newTestAuthService(userRepo)
	storeSvc := NewStoreService(storeRepo, testLogger())
	ctx := context.Background()

	if _, err := authSvc.Register(ctx, ports.RegisterInput{
		Email: "v@x.com", Password: "longpass1", FullName: "Vendor X", Role: domain.RoleVendor,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := authSvc.Login(ctx, "v@x.com", "longpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	principal, err := authSvc.ResolvePrincipal(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("principal resolution failed: %v", err)
	}

	if _, err := storeSvc.Create(ctx, principal, ports.CreateStoreInput{Name: "Acme"}); err != nil {
		t.Fatalf("store creation failed: %v", err)
	}

	_, err = storeSvc.Create(ctx, principal, ports.CreateStoreInput{Name: "Acme Two"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != "STORE_ALREADY_EXISTS_FOR_VENDOR" {
		t.Fatalf("expected STORE_ALREADY_EXISTS_FOR_VENDOR, got %v", err)
	}
}
