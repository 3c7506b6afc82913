package repository

import (
	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	DB *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) FindByUsername(username string) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.DB.Where("username = ?", username).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByID(id uint) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Page(name string, page, limit int) ([]entity.Employee, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.DB.Model(&entity.Employee{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []entity.Employee
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *EmployeeRepository) Create(e *entity.Employee) error {
	return r.DB.Create(e).Error
}

func (r *EmployeeRepository) Update(e *entity.Employee) error {
	return r.DB.Save(e).Error
}
