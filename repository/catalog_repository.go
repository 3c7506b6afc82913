package repository

import (
	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

// CatalogRepository covers dishes, setmeals and categories: the sellable
// items the cart snapshots from and the cache serves.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ---------------- Dishes ----------------

func (r *CatalogRepository) DishByID(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.Preload("Flavors").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *CatalogRepository) SellableDishesByCategory(categoryID uint) ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := r.DB.Preload("Flavors").
		Where("category_id = ? AND status = ?", categoryID, entity.StatusEnabled).
		Order("id").Find(&dishes).Error
	return dishes, err
}

func (r *CatalogRepository) PageDishes(name string, categoryID *uint, page, limit int) ([]entity.Dish, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.DB.Model(&entity.Dish{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var dishes []entity.Dish
	err := q.Order("updated_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&dishes).Error
	return dishes, total, err
}

func (r *CatalogRepository) CreateDish(d *entity.Dish) error {
	return r.DB.Create(d).Error
}

func (r *CatalogRepository) UpdateDish(d *entity.Dish) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(d).Error
}

func (r *CatalogRepository) DeleteDishes(ids []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id IN ?", ids).Delete(&entity.DishFlavor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Dish{}, ids).Error
	})
}

func (r *CatalogRepository) UpdateDishStatus(id uint, status int, updates map[string]any) error {
	updates["status"] = status
	return r.DB.Model(&entity.Dish{}).Where("id = ?", id).Updates(updates).Error
}

// ---------------- Setmeals ----------------

func (r *CatalogRepository) SetmealByID(id uint) (*entity.Setmeal, error) {
	var s entity.Setmeal
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) SellableSetmealsByCategory(categoryID uint) ([]entity.Setmeal, error) {
	var list []entity.Setmeal
	err := r.DB.Where("category_id = ? AND status = ?", categoryID, entity.StatusEnabled).
		Order("id").Find(&list).Error
	return list, err
}

func (r *CatalogRepository) CreateSetmeal(s *entity.Setmeal) error {
	return r.DB.Create(s).Error
}

func (r *CatalogRepository) UpdateSetmeal(s *entity.Setmeal) error {
	return r.DB.Save(s).Error
}

func (r *CatalogRepository) DeleteSetmeals(ids []uint) error {
	return r.DB.Delete(&entity.Setmeal{}, ids).Error
}

func (r *CatalogRepository) UpdateSetmealStatus(id uint, status int, updates map[string]any) error {
	updates["status"] = status
	return r.DB.Model(&entity.Setmeal{}).Where("id = ?", id).Updates(updates).Error
}

// ---------------- Categories ----------------

func (r *CatalogRepository) CategoryByID(id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) ListCategories(typ *int) ([]entity.Category, error) {
	q := r.DB.Model(&entity.Category{}).Where("status = ?", entity.StatusEnabled)
	if typ != nil {
		q = q.Where("type = ?", *typ)
	}
	var list []entity.Category
	err := q.Order("sort, id").Find(&list).Error
	return list, err
}

func (r *CatalogRepository) CreateCategory(c *entity.Category) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) UpdateCategory(c *entity.Category) error {
	return r.DB.Save(c).Error
}

func (r *CatalogRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}

func (r *CatalogRepository) CountDishesInCategory(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Dish{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}
