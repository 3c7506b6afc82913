package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/cache"
	"github.com/WA-TLE/interstellar-diet/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService serves sellable listings through a cache-aside store and
// invalidates affected partitions on every catalog mutation. Single-category
// mutations evict the exact key; batch deletes whose blast radius is unknown
// wipe the whole prefix.
type CatalogService struct {
	Repo  *repository.CatalogRepository
	Cache cache.Store
	Log   *zap.Logger
}

func NewCatalogService(repo *repository.CatalogRepository, store cache.Store, log *zap.Logger) *CatalogService {
	return &CatalogService{Repo: repo, Cache: store, Log: log}
}

// ----- Read path -----

// ListSellableDishes returns the on-sale dishes of one category, populating
// the cache lazily on the first miss.
func (s *CatalogService) ListSellableDishes(ctx context.Context, categoryID uint) ([]entity.Dish, error) {
	key := cache.DishListKey(categoryID)

	if raw, hit, err := s.Cache.Get(ctx, key); err != nil {
		s.Log.Warn("cache get failed, reading source", zap.String("key", key), zap.Error(err))
	} else if hit {
		var dishes []entity.Dish
		if err := json.Unmarshal([]byte(raw), &dishes); err == nil {
			return dishes, nil
		}
		s.Log.Warn("cache entry corrupt, evicting", zap.String("key", key))
		_ = s.Cache.Delete(ctx, key)
	}

	dishes, err := s.Repo.SellableDishesByCategory(categoryID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(dishes); err == nil {
		if err := s.Cache.Set(ctx, key, string(raw)); err != nil {
			s.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return dishes, nil
}

func (s *CatalogService) ListSellableSetmeals(ctx context.Context, categoryID uint) ([]entity.Setmeal, error) {
	key := cache.SetmealListKey(categoryID)

	if raw, hit, err := s.Cache.Get(ctx, key); err != nil {
		s.Log.Warn("cache get failed, reading source", zap.String("key", key), zap.Error(err))
	} else if hit {
		var list []entity.Setmeal
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list, nil
		}
		s.Log.Warn("cache entry corrupt, evicting", zap.String("key", key))
		_ = s.Cache.Delete(ctx, key)
	}

	list, err := s.Repo.SellableSetmealsByCategory(categoryID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(list); err == nil {
		if err := s.Cache.Set(ctx, key, string(raw)); err != nil {
			s.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return list, nil
}

func (s *CatalogService) ListCategories(typ *int) ([]entity.Category, error) {
	return s.Repo.ListCategories(typ)
}

// ----- Dish mutations -----

func (s *CatalogService) CreateDish(ctx context.Context, actorID uint, d *entity.Dish) error {
	d.ApplyCreateAudit(time.Now(), actorID)
	if err := s.Repo.CreateDish(d); err != nil {
		return err
	}
	return s.evict(ctx, cache.DishListKey(d.CategoryID))
}

func (s *CatalogService) UpdateDish(ctx context.Context, actorID uint, d *entity.Dish) error {
	old, err := s.Repo.DishByID(d.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	d.CreatedAt = old.CreatedAt
	d.CreatedBy = old.CreatedBy
	d.ApplyUpdateAudit(time.Now(), actorID)
	if err := s.Repo.UpdateDish(d); err != nil {
		return err
	}

	// A category move leaves both the old and new listing stale.
	keys := []string{cache.DishListKey(d.CategoryID)}
	if old.CategoryID != d.CategoryID {
		keys = append(keys, cache.DishListKey(old.CategoryID))
	}
	return s.evict(ctx, keys...)
}

func (s *CatalogService) DeleteDishes(ctx context.Context, ids []uint) error {
	if err := s.Repo.DeleteDishes(ids); err != nil {
		return err
	}
	return s.evictPrefix(ctx, cache.DishListPrefix)
}

func (s *CatalogService) SetDishStatus(ctx context.Context, actorID, id uint, status int) error {
	d, err := s.Repo.DishByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	err = s.Repo.UpdateDishStatus(id, status, map[string]any{
		"updated_at": time.Now(),
		"updated_by": actorID,
	})
	if err != nil {
		return err
	}
	return s.evict(ctx, cache.DishListKey(d.CategoryID))
}

// ----- Setmeal mutations -----

func (s *CatalogService) CreateSetmeal(ctx context.Context, actorID uint, m *entity.Setmeal) error {
	m.ApplyCreateAudit(time.Now(), actorID)
	if err := s.Repo.CreateSetmeal(m); err != nil {
		return err
	}
	return s.evict(ctx, cache.SetmealListKey(m.CategoryID))
}

func (s *CatalogService) UpdateSetmeal(ctx context.Context, actorID uint, m *entity.Setmeal) error {
	old, err := s.Repo.SetmealByID(m.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	m.CreatedAt = old.CreatedAt
	m.CreatedBy = old.CreatedBy
	m.ApplyUpdateAudit(time.Now(), actorID)
	if err := s.Repo.UpdateSetmeal(m); err != nil {
		return err
	}

	keys := []string{cache.SetmealListKey(m.CategoryID)}
	if old.CategoryID != m.CategoryID {
		keys = append(keys, cache.SetmealListKey(old.CategoryID))
	}
	return s.evict(ctx, keys...)
}

func (s *CatalogService) DeleteSetmeals(ctx context.Context, ids []uint) error {
	if err := s.Repo.DeleteSetmeals(ids); err != nil {
		return err
	}
	return s.evictPrefix(ctx, cache.SetmealListPrefix)
}

func (s *CatalogService) SetSetmealStatus(ctx context.Context, actorID, id uint, status int) error {
	m, err := s.Repo.SetmealByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	err = s.Repo.UpdateSetmealStatus(id, status, map[string]any{
		"updated_at": time.Now(),
		"updated_by": actorID,
	})
	if err != nil {
		return err
	}
	return s.evict(ctx, cache.SetmealListKey(m.CategoryID))
}

// ----- Category mutations -----

func (s *CatalogService) CreateCategory(ctx context.Context, actorID uint, c *entity.Category) error {
	c.ApplyCreateAudit(time.Now(), actorID)
	if err := s.Repo.CreateCategory(c); err != nil {
		return err
	}
	return s.evict(ctx, cache.DishListKey(c.ID), cache.SetmealListKey(c.ID))
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actorID uint, c *entity.Category) error {
	old, err := s.Repo.CategoryByID(c.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	c.CreatedAt = old.CreatedAt
	c.CreatedBy = old.CreatedBy
	c.ApplyUpdateAudit(time.Now(), actorID)
	if err := s.Repo.UpdateCategory(c); err != nil {
		return err
	}
	return s.evict(ctx, cache.DishListKey(c.ID), cache.SetmealListKey(c.ID))
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	n, err := s.Repo.CountDishesInCategory(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.Repo.DeleteCategory(id); err != nil {
		return err
	}
	return s.evict(ctx, cache.DishListKey(id), cache.SetmealListKey(id))
}

// ----- Admin listings -----

func (s *CatalogService) PageDishes(name string, categoryID *uint, page, limit int) ([]entity.Dish, int64, error) {
	return s.Repo.PageDishes(name, categoryID, page, limit)
}

func (s *CatalogService) DishDetail(id uint) (*entity.Dish, error) {
	d, err := s.Repo.DishByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return d, err
}

func (s *CatalogService) SetmealDetail(id uint) (*entity.Setmeal, error) {
	m, err := s.Repo.SetmealByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return m, err
}

// ----- Invalidation helpers -----

func (s *CatalogService) evict(ctx context.Context, keys ...string) error {
	if err := s.Cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("cache invalidation: %w", err)
	}
	return nil
}

func (s *CatalogService) evictPrefix(ctx context.Context, prefix string) error {
	if err := s.Cache.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("cache invalidation: %w", err)
	}
	return nil
}
