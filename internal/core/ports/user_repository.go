package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields. Nil means "leave unchanged".
type UserUpdate struct {
	FullName *string
	Phone    *string
	IsActive *bool
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.IsActive == nil
}

// UserRepository defines persistence for user records. Implementations must
// enforce email uniqueness at the storage layer; Create returns
// domain.ErrDuplicateEmail when the unique index rejects the write.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
}
