package services

import (
	"context"
	"strings"
	"testing"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/cache"
	"github.com/WA-TLE/interstellar-diet/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mapStore struct {
	data map[string]string
	gets int
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string]string{}}
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	s.gets++
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.data[key] = value
	return nil
}

func (s *mapStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *mapStore) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
		}
	}
	return nil
}

type catalogFixture struct {
	db    *gorm.DB
	store *mapStore
	svc   *CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db := newTestDB(t)
	store := newMapStore()
	svc := NewCatalogService(repository.NewCatalogRepository(db), store, zap.NewNop())
	return &catalogFixture{db: db, store: store, svc: svc}
}

func (f *catalogFixture) seedDish(t *testing.T, name string, categoryID uint, status int) *entity.Dish {
	t.Helper()
	d := &entity.Dish{Name: name, CategoryID: categoryID, Price: 1000, Status: status}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

func TestListSellableDishesFillsCache(t *testing.T) {
	f := newCatalogFixture(t)
	f.seedDish(t, "Rice", 5, entity.StatusEnabled)
	f.seedDish(t, "Old Special", 5, entity.StatusDisabled)
	ctx := context.Background()

	dishes, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, dishes, 1, "disabled dishes are not sellable")
	assert.Contains(t, f.store.data, cache.DishListKey(5))

	// Now serving from cache: a row added behind the cache's back stays
	// invisible until something evicts the key.
	f.seedDish(t, "Noodles", 5, entity.StatusEnabled)
	dishes, err = f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}

func TestListSellableDishesCorruptEntry(t *testing.T) {
	f := newCatalogFixture(t)
	f.seedDish(t, "Rice", 5, entity.StatusEnabled)
	ctx := context.Background()
	f.store.data[cache.DishListKey(5)] = "{not json"

	dishes, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, dishes, 1, "corrupt entry falls through to the source")
	assert.NotEqual(t, "{not json", f.store.data[cache.DishListKey(5)], "corrupt entry gets rewritten")
}

func TestCreateDishEvictsCategory(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	_, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	require.Contains(t, f.store.data, cache.DishListKey(5))

	d := &entity.Dish{Name: "Rice", CategoryID: 5, Price: 1000, Status: entity.StatusEnabled}
	require.NoError(t, f.svc.CreateDish(ctx, 1, d))

	assert.NotContains(t, f.store.data, cache.DishListKey(5))
}

func TestUpdateDishCategoryMoveEvictsBoth(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	d := f.seedDish(t, "Rice", 5, entity.StatusEnabled)

	_, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	_, err = f.svc.ListSellableDishes(ctx, 6)
	require.NoError(t, err)

	moved := *d
	moved.CategoryID = 6
	require.NoError(t, f.svc.UpdateDish(ctx, 1, &moved))

	assert.NotContains(t, f.store.data, cache.DishListKey(5), "old category listing is stale")
	assert.NotContains(t, f.store.data, cache.DishListKey(6), "new category listing is stale")
}

func TestDeleteDishesWipesPrefix(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	d1 := f.seedDish(t, "Rice", 5, entity.StatusEnabled)
	d2 := f.seedDish(t, "Noodles", 6, entity.StatusEnabled)

	_, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	_, err = f.svc.ListSellableDishes(ctx, 6)
	require.NoError(t, err)
	f.store.data[cache.SetmealListKey(5)] = "[]"

	require.NoError(t, f.svc.DeleteDishes(ctx, []uint{d1.ID, d2.ID}))

	assert.NotContains(t, f.store.data, cache.DishListKey(5))
	assert.NotContains(t, f.store.data, cache.DishListKey(6))
	assert.Contains(t, f.store.data, cache.SetmealListKey(5), "setmeal partition is untouched")
}

func TestSetDishStatusEvicts(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	d := f.seedDish(t, "Rice", 5, entity.StatusEnabled)

	_, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, f.svc.SetDishStatus(ctx, 1, d.ID, entity.StatusDisabled))
	assert.NotContains(t, f.store.data, cache.DishListKey(5))

	dishes, err := f.svc.ListSellableDishes(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestUpdateDishUnknown(t *testing.T) {
	f := newCatalogFixture(t)
	err := f.svc.UpdateDish(context.Background(), 1, &entity.Dish{ID: 999, Name: "ghost", CategoryID: 1})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	cat := &entity.Category{Type: entity.CategoryDish, Name: "Mains", Status: entity.StatusEnabled}
	require.NoError(t, f.db.Create(cat).Error)
	f.seedDish(t, "Rice", cat.ID, entity.StatusEnabled)

	assert.ErrorIs(t, f.svc.DeleteCategory(ctx, cat.ID), ErrCategoryInUse)
}

func TestCategoryMutationEvictsBothPartitions(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	cat := &entity.Category{Type: entity.CategoryDish, Name: "Mains", Status: entity.StatusEnabled}
	require.NoError(t, f.db.Create(cat).Error)

	f.store.data[cache.DishListKey(cat.ID)] = "[]"
	f.store.data[cache.SetmealListKey(cat.ID)] = "[]"

	cat.Name = "Renamed"
	require.NoError(t, f.svc.UpdateCategory(ctx, 1, cat))

	assert.NotContains(t, f.store.data, cache.DishListKey(cat.ID))
	assert.NotContains(t, f.store.data, cache.SetmealListKey(cat.ID))
}

func TestDishAuditColumns(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	d := &entity.Dish{Name: "Rice", CategoryID: 5, Price: 1000, Status: entity.StatusEnabled}
	require.NoError(t, f.svc.CreateDish(ctx, 7, d))
	assert.EqualValues(t, 7, d.CreatedBy)
	assert.EqualValues(t, 7, d.UpdatedBy)

	d.Price = 1200
	require.NoError(t, f.svc.UpdateDish(ctx, 8, d))

	var got entity.Dish
	require.NoError(t, f.db.First(&got, d.ID).Error)
	assert.EqualValues(t, 7, got.CreatedBy, "creator survives updates")
	assert.EqualValues(t, 8, got.UpdatedBy)
}
