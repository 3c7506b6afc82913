package entity

import (
	"gorm.io/gorm"
)

// CartItem references either a dish or a setmeal, never both.
// Name/image/amount are frozen at the moment the item was added.
type CartItem struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"`

	DishID    *uint  `json:"dishId"`
	SetmealID *uint  `json:"setmealId"`
	Flavor    string `json:"flavor"`

	Name   string `json:"name"`
	Image  string `json:"image"`
	Amount int64  `json:"amount"` // unit price
	Number int    `json:"number"`
}
