package entity

import (
	"gorm.io/gorm"
)

type DishFlavor struct {
	gorm.Model
	DishID uint   `json:"dishId" gorm:"index"`
	Name   string `json:"name"`
	Value  string `json:"value"` // JSON array of option labels
}
