package domain

import "time"

// StoreOwner is the subset of User embedded in store views.
type StoreOwner struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Store is the vendor storefront aggregate. A vendor owns at most one store
// and store names are globally unique; both constraints are backed by unique
// indexes in the repository.
type Store struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	IsActive     bool       `json:"is_active"`
	ProductCount int        `json:"product_count"`
	OwnerID      string     `json:"owner_id"`
	Owner        StoreOwner `json:"owner"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
