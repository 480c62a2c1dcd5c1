package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const usersCollection = "users"

// UserRepository persists user records in MongoDB. The unique index on email
// (see EnsureIndexes) backs the duplicate-email invariant.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashed_password"`
	FullName       string    `bson:"full_name"`
	Role           string    `bson:"role"`
	IsActive       bool      `bson:"is_active"`
	Phone          string    `bson:"phone,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             mu.ID,
		Email:          mu.Email,
		HashedPassword: mu.HashedPassword,
		FullName:       mu.FullName,
		Role:           domain.Role(mu.Role),
		IsActive:       mu.IsActive,
		Phone:          mu.Phone,
		CreatedAt:      mu.CreatedAt.UTC(),
		UpdatedAt:      mu.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := mongoUser{
		ID:             uuid.NewString(),
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		FullName:       user.FullName,
		Role:           string(user.Role),
		IsActive:       user.IsActive,
		Phone:          user.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}
