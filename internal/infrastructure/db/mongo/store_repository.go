package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const storesCollection = "stores"

// StoreRepository persists store records in MongoDB. Unique indexes on name
// and owner_id (see EnsureIndexes) back the one-store-per-vendor and
// unique-name invariants; a racing writer that survives the service
// pre-checks is rejected here with the matching Conflict error.
type StoreRepository struct {
	coll *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(storesCollection)}
}

type mongoStoreOwner struct {
	ID       string `bson:"id"`
	FullName string `bson:"full_name"`
	Email    string `bson:"email"`
}

type mongoStore struct {
	ID           string          `bson:"_id"`
	Name         string          `bson:"name"`
	Description  string          `bson:"description,omitempty"`
	IsActive     bool            `bson:"is_active"`
	ProductCount int             `bson:"product_count"`
	OwnerID      string          `bson:"owner_id"`
	Owner        mongoStoreOwner `bson:"owner"`
	CreatedAt    time.Time       `bson:"created_at"`
	UpdatedAt    time.Time       `bson:"updated_at"`
}

func (ms *mongoStore) toDomain() *domain.Store {
	return &domain.Store{
		ID:           ms.ID,
		Name:         ms.Name,
		Description:  ms.Description,
		IsActive:     ms.IsActive,
		ProductCount: ms.ProductCount,
		OwnerID:      ms.OwnerID,
		Owner: domain.StoreOwner{
			ID:       ms.Owner.ID,
			FullName: ms.Owner.FullName,
			Email:    ms.Owner.Email,
		},
		CreatedAt: ms.CreatedAt.UTC(),
		UpdatedAt: ms.UpdatedAt.UTC(),
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	now := time.Now().UTC()
	doc := mongoStore{
		ID:           uuid.NewString(),
		Name:         store.Name,
		Description:  store.Description,
		IsActive:     store.IsActive,
		ProductCount: store.ProductCount,
		OwnerID:      store.OwnerID,
		Owner: mongoStoreOwner{
			ID:       store.Owner.ID,
			FullName: store.Owner.FullName,
			Email:    store.Owner.Email,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return doc.toDomain(), nil
}

// duplicateKeyConflict maps a duplicate-key error to the Conflict matching
// the violated index.
func duplicateKeyConflict(err error) error {
	if strings.Contains(err.Error(), "owner_id") {
		return domain.ErrVendorHasStore
	}
	return domain.ErrStoreNameTaken
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StoreRepository) FindByName(ctx context.Context, name string) (*domain.Store, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID string) (*domain.Store, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *StoreRepository) findOne(ctx context.Context, filter bson.M) (*domain.Store, error) {
	var ms mongoStore
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *StoreRepository) Update(ctx context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ProductCount != nil {
		set["product_count"] = *update.ProductCount
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStoreNameTaken
		}
		return nil, fmt.Errorf("update store: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrStoreNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

func (r *StoreRepository) List(ctx context.Context, page, size int, activeOnly bool) ([]*domain.Store, int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer cur.Close(ctx)

	var stores []*domain.Store
	for cur.Next(ctx) {
		var ms mongoStore
		if err := cur.Decode(&ms); err != nil {
			return nil, 0, fmt.Errorf("decode store: %w", err)
		}
		stores = append(stores, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, total, nil
}
