package repository

import (
	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) GetForUser(userID, id uint) (*entity.AddressBook, error) {
	var a entity.AddressBook
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) ListForUser(userID uint) ([]entity.AddressBook, error) {
	var list []entity.AddressBook
	err := r.DB.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&list).Error
	return list, err
}

func (r *AddressRepository) Create(a *entity.AddressBook) error {
	return r.DB.Create(a).Error
}

func (r *AddressRepository) Update(a *entity.AddressBook) error {
	return r.DB.Save(a).Error
}

func (r *AddressRepository) Delete(userID, id uint) error {
	return r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.AddressBook{}).Error
}

// SetDefault clears the previous default before marking the new one.
func (r *AddressRepository) SetDefault(userID, id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.AddressBook{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.AddressBook{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true).Error
	})
}
