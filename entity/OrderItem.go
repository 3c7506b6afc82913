package entity

import (
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of one cart row at submission time.
// Later catalog price changes never touch historical orders.
type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId" gorm:"index"`
	Order   Order `json:"-"`

	DishID    *uint  `json:"dishId"`
	SetmealID *uint  `json:"setmealId"`
	Flavor    string `json:"flavor"`

	Name   string `json:"name"`
	Image  string `json:"image"`
	Amount int64  `json:"amount"` // unit price
	Number int    `json:"number"`
}
