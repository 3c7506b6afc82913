package services

import (
	"testing"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type cartFixture struct {
	db  *gorm.DB
	svc *CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewCatalogRepository(db), zap.NewNop())
	return &cartFixture{db: db, svc: svc}
}

func (f *cartFixture) seedDish(t *testing.T, name string, price int64) *entity.Dish {
	t.Helper()
	d := &entity.Dish{Name: name, CategoryID: 1, Price: price, Image: name + ".png", Status: entity.StatusEnabled}
	require.NoError(t, f.db.Create(d).Error)
	return d
}

func (f *cartFixture) seedSetmeal(t *testing.T, name string, price int64) *entity.Setmeal {
	t.Helper()
	m := &entity.Setmeal{Name: name, CategoryID: 2, Price: price, Status: entity.StatusEnabled}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func TestCartAddSnapshotsDish(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)

	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, Flavor: "mild"}))

	items, err := f.svc.List(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mapo Tofu", items[0].Name)
	assert.Equal(t, "Mapo Tofu.png", items[0].Image)
	assert.Equal(t, int64(2200), items[0].Amount)
	assert.Equal(t, 1, items[0].Number)
}

func TestCartAddMergesDuplicate(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)

	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, Flavor: "mild"}))
	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, Flavor: "mild"}))

	items, err := f.svc.List(1)
	require.NoError(t, err)
	require.Len(t, items, 1, "same item and flavor must merge into one row")
	assert.Equal(t, 2, items[0].Number)
}

func TestCartAddDistinctFlavors(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)

	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, Flavor: "mild"}))
	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, Flavor: "hot"}))

	items, err := f.svc.List(1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartAddSetmeal(t *testing.T) {
	f := newCartFixture(t)
	m := f.seedSetmeal(t, "Family Combo", 9900)

	require.NoError(t, f.svc.Add(1, &CartItemRef{SetmealID: &m.ID}))

	items, err := f.svc.List(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Family Combo", items[0].Name)
	assert.Equal(t, int64(9900), items[0].Amount)
}

func TestCartRefContract(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)
	m := f.seedSetmeal(t, "Family Combo", 9900)

	assert.Error(t, f.svc.Add(1, &CartItemRef{}), "neither reference set")
	assert.Error(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID, SetmealID: &m.ID}), "both references set")
}

func TestCartAddUnknownDish(t *testing.T) {
	f := newCartFixture(t)
	missing := uint(999)
	assert.ErrorIs(t, f.svc.Add(1, &CartItemRef{DishID: &missing}), ErrItemNotFound)
}

func TestCartSub(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)
	ref := &CartItemRef{DishID: &d.ID}
	require.NoError(t, f.svc.Add(1, ref))
	require.NoError(t, f.svc.Add(1, ref))

	require.NoError(t, f.svc.Sub(1, ref))
	items, err := f.svc.List(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Number)

	require.NoError(t, f.svc.Sub(1, ref))
	items, err = f.svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, items, "hitting zero deletes the row")
}

func TestCartSubMissing(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)
	assert.ErrorIs(t, f.svc.Sub(1, &CartItemRef{DishID: &d.ID}), ErrItemNotFound)
}

func TestCartIsolatedPerUser(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)
	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID}))

	items, err := f.svc.List(2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartClean(t *testing.T) {
	f := newCartFixture(t)
	d := f.seedDish(t, "Mapo Tofu", 2200)
	require.NoError(t, f.svc.Add(1, &CartItemRef{DishID: &d.ID}))

	require.NoError(t, f.svc.Clean(1))
	items, err := f.svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
