package repository

import (
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByNumber(number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("number = ?", number).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateFromStatus applies updates only when the order still sits in one of
// the expected source states. The conditional write makes racing transitions
// and duplicate sweeper instances resolve to a single winner; callers treat
// "no row touched" as a guard violation.
func (r *OrderRepository) UpdateFromStatus(orderID uint, from []entity.OrderStatus, updates map[string]any) (bool, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Listing ----------------

func (r *OrderRepository) PageForUser(userID uint, status *entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.DB.Model(&entity.Order{}).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Order("order_time DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// OrderSearch is the admin-side condition search filter.
type OrderSearch struct {
	Number    string
	Phone     string
	Status    *entity.OrderStatus
	BeginTime *time.Time
	EndTime   *time.Time
}

func (r *OrderRepository) PageSearch(f OrderSearch, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.DB.Model(&entity.Order{})
	if f.Number != "" {
		q = q.Where("number LIKE ?", "%"+f.Number+"%")
	}
	if f.Phone != "" {
		q = q.Where("phone LIKE ?", "%"+f.Phone+"%")
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.BeginTime != nil {
		q = q.Where("order_time >= ?", *f.BeginTime)
	}
	if f.EndTime != nil {
		q = q.Where("order_time <= ?", *f.EndTime)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Order("order_time DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) CountByStatus(status entity.OrderStatus) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// ListByStatusAndOrderTimeBefore returns sweep candidates: orders still in
// status whose placement time is older than t.
func (r *OrderRepository) ListByStatusAndOrderTimeBefore(status entity.OrderStatus, t time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("status = ? AND order_time < ?", status, t).Find(&orders).Error
	return orders, err
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateItems(tx *gorm.DB, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *OrderRepository) ListItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}
