package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/api/metrics"
	"github.com/markethub/marketplace-api/internal/api/middleware"
	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

// StoreProfileCache caches public store profiles. Satisfied by the redis
// store cache; a nil cache disables caching.
type StoreProfileCache interface {
	Get(ctx context.Context, storeID string) (*domain.Store, error)
	Set(ctx context.Context, store *domain.Store) error
	Invalidate(ctx context.Context, storeID string) error
}

type StoreHandler struct {
	storeService ports.StoreService
	cache        StoreProfileCache
	logger       zerolog.Logger
}

func NewStoreHandler(storeService ports.StoreService, cache StoreProfileCache, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{storeService: storeService, cache: cache, logger: logger}
}

// Create opens a store for the authenticated vendor.
//
// @Summary      Create a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/stores [post]
func (h *StoreHandler) Create(c echo.Context) error {
	user := middleware.Principal(c)
	if user == nil {
		return domain.ErrTokenInvalid.WithDetail("missing authentication")
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput.WithDetail("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.storeService.Create(c.Request().Context(), user, ports.CreateStoreInput{
		Name:         req.Name,
		Description:  req.Description,
		ProductCount: req.ProductCount,
	})
	if err != nil {
		return err
	}

	metrics.StoresCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, store)
}

// List returns a page of stores, newest first. Inactive stores are included
// only when the optional principal is an admin.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Param        page  query     int  false  "Page (1-based)"
// @Param        size  query     int  false  "Page size (max 100)"
// @Success      200   {object}  storeListResponse
// @Router       /api/v1/stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	var q listStoresQuery
	if err := c.Bind(&q); err != nil {
		return domain.ErrInvalidInput.WithDetail("invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Size == 0 {
		q.Size = 20
	}

	user := middleware.Principal(c)
	includeInactive := user != nil && user.Role == domain.RoleAdmin

	result, err := h.storeService.List(c.Request().Context(), ports.ListStoresInput{
		Page:            q.Page,
		Size:            q.Size,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Store{}
	}
	return c.JSON(http.StatusOK, storeListResponse{
		Page:  result.Page,
		Size:  result.Size,
		Total: result.Total,
		Items: items,
	})
}

// GetByID returns the public profile of an active store.
//
// @Summary      Get a store's public profile
// @Tags         stores
// @Produce      json
// @Param        id   path      string  true  "Store id"
// @Success      200  {object}  domain.Store
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/stores/{id} [get]
func (h *StoreHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, id)
		if err != nil {
			// Cache trouble must not take down the read path.
			h.logger.Warn().Err(err).Str("store_id", id).Msg("store cache lookup failed")
		}
		if cached != nil {
			metrics.StoreCacheTotal.WithLabelValues("hit").Inc()
			return c.JSON(http.StatusOK, cached)
		}
		metrics.StoreCacheTotal.WithLabelValues("miss").Inc()
	}

	store, err := h.storeService.PublicProfile(ctx, id)
	if err != nil {
		return err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, store); err != nil {
			h.logger.Warn().Err(err).Str("store_id", id).Msg("store cache fill failed")
		}
	}
	return c.JSON(http.StatusOK, store)
}

// Update applies a partial update to the caller's own store.
//
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Store id"
// @Param        body  body      updateStoreRequest  true  "Fields to change"
// @Success      200   {object}  domain.Store
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/stores/{id} [put]
func (h *StoreHandler) Update(c echo.Context) error {
	user := middleware.Principal(c)
	if user == nil {
		return domain.ErrTokenInvalid.WithDetail("missing authentication")
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput.WithDetail("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Param("id")
	store, err := h.storeService.Update(c.Request().Context(), id, user, ports.StoreUpdate{
		Name:         req.Name,
		Description:  req.Description,
		ProductCount: req.ProductCount,
	})
	if err != nil {
		return err
	}

	h.invalidate(c, id)
	return c.JSON(http.StatusOK, store)
}

// UpdateStatus toggles a store's is_active flag. Admin-only by route guard.
//
// @Summary      Activate or deactivate a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Store id"
// @Param        body  body      storeStatusRequest  true  "New status"
// @Success      200   {object}  domain.Store
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/stores/{id}/status [patch]
func (h *StoreHandler) UpdateStatus(c echo.Context) error {
	var req storeStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput.WithDetail("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Param("id")
	store, err := h.storeService.SetStatus(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return err
	}

	h.invalidate(c, id)
	return c.JSON(http.StatusOK, store)
}

// Delete removes a store permanently. Admin-only by route guard.
//
// @Summary      Delete a store
// @Tags         stores
// @Security     BearerAuth
// @Param        id  path  string  true  "Store id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/stores/{id} [delete]
func (h *StoreHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.storeService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.invalidate(c, id)
	return c.NoContent(http.StatusNoContent)
}

func (h *StoreHandler) invalidate(c echo.Context, id string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request().Context(), id); err != nil {
		h.logger.Warn().Err(err).Str("store_id", id).Msg("store cache invalidation failed")
	}
}
