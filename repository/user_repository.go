package repository

import (
	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&n).Error
	return n, err
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}
