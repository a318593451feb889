package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizza-ordering/internal/models"
	"pizza-ordering/internal/store"
	"pizza-ordering/internal/util"

	"go.uber.org/zap"
)

// CatalogStore is the persistence boundary for the catalog
type CatalogStore interface {
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
	GetPizzaTypes(ctx context.Context) ([]models.PizzaType, error)
	GetPizzaID(ctx context.Context, name, size string) (string, error)
}

// MenuCache caches the read-only menu listings. Resolution results are
// never cached: only the listings go through here.
type MenuCache interface {
	GetMenu(ctx context.Context) ([]models.MenuItem, error)
	SetMenu(ctx context.Context, items []models.MenuItem, ttl time.Duration) error
	GetPizzaTypes(ctx context.Context) ([]models.PizzaType, error)
	SetPizzaTypes(ctx context.Context, types []models.PizzaType, ttl time.Duration) error
}

// CatalogService serves menu listings and resolves (name, size) pairs
type CatalogService struct {
	store    CatalogStore
	cache    MenuCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil, in
// which case listings always hit the database.
func NewCatalogService(store CatalogStore, cache MenuCache, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// ListMenu returns the menu listing, served from cache when possible
func (s *CatalogService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListMenu")
	defer span.End()

	if s.cache != nil {
		items, err := s.cache.GetMenu(ctx)
		if err != nil {
			s.logger.Warn("Menu cache read failed, falling back to DB", zap.Error(err))
		} else if items != nil {
			util.MenuCacheHitsTotal.Inc()
			return items, nil
		}
	}
	util.MenuCacheMissesTotal.Inc()

	items, err := s.store.GetMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, items, s.cacheTTL); err != nil {
			s.logger.Warn("Menu cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// ListPizzaTypes returns the pizza type listing, served from cache when
// possible
func (s *CatalogService) ListPizzaTypes(ctx context.Context) ([]models.PizzaType, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListPizzaTypes")
	defer span.End()

	if s.cache != nil {
		types, err := s.cache.GetPizzaTypes(ctx)
		if err != nil {
			s.logger.Warn("Pizza type cache read failed, falling back to DB", zap.Error(err))
		} else if types != nil {
			return types, nil
		}
	}

	types, err := s.store.GetPizzaTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pizza types: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPizzaTypes(ctx, types, s.cacheTTL); err != nil {
			s.logger.Warn("Pizza type cache write failed", zap.Error(err))
		}
	}
	return types, nil
}

// GetPizzaID resolves a (name, size) pair to a catalog identifier.
// Always answered from the database: resolution is never cached.
func (s *CatalogService) GetPizzaID(ctx context.Context, name, size string) (string, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetPizzaID")
	defer span.End()

	pizzaID, err := s.store.GetPizzaID(ctx, name, size)
	if err != nil {
		if errors.Is(err, store.ErrPizzaNotFound) {
			return "", ErrPizzaNotFound
		}
		return "", fmt.Errorf("failed to resolve pizza: %w", err)
	}
	return pizzaID, nil
}
