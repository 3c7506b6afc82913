package repository

import (
	"errors"

	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

func (r *CartRepository) ListForUser(userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.DB.Where("user_id = ?", userID).Order("created_at").Find(&items).Error
	return items, err
}

// Find returns the user's cart row for the same item+flavor, or nil when absent.
func (r *CartRepository) Find(userID uint, dishID, setmealID *uint, flavor string) (*entity.CartItem, error) {
	q := r.DB.Where("user_id = ?", userID)
	if dishID != nil {
		q = q.Where("dish_id = ?", *dishID)
	} else {
		q = q.Where("setmeal_id = ?", *setmealID)
	}
	q = q.Where("flavor = ?", flavor)

	var item entity.CartItem
	err := q.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) Insert(tx *gorm.DB, item *entity.CartItem) error {
	return tx.Create(item).Error
}

func (r *CartRepository) InsertBatch(tx *gorm.DB, items []entity.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *CartRepository) UpdateNumber(tx *gorm.DB, id uint, number int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", id).Update("number", number).Error
}

func (r *CartRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.CartItem{}, id).Error
}

func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}
