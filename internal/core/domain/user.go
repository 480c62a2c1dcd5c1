package domain

import "time"

// Role determines which operations a user is permitted to perform.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Owner returns the store-owner view of the user.
func (u *User) Owner() StoreOwner {
	return StoreOwner{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
