package handler

import "github.com/markethub/marketplace-api/internal/core/domain"

// errorResponse mirrors the envelope rendered by the central error handler;
// declared here for the swagger annotations only.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

type createStoreRequest struct {
	Name         string `json:"name"          validate:"required,min=1,max=255"`
	Description  string `json:"description"   validate:"omitempty,max=500"`
	ProductCount int    `json:"product_count" validate:"gte=0"`
}

type updateStoreRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description"   validate:"omitempty,max=500"`
	ProductCount *int    `json:"product_count" validate:"omitempty,gte=0"`
}

// storeStatusRequest uses a pointer so an explicit false survives the
// required check.
type storeStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type listStoresQuery struct {
	Page int `query:"page" validate:"omitempty,gte=1"`
	Size int `query:"size" validate:"omitempty,gte=1,lte=100"`
}

type storeListResponse struct {
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
	Items []*domain.Store `json:"items"`
}
