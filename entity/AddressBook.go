package entity

import (
	"gorm.io/gorm"
)

type AddressBook struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"`

	Consignee string `json:"consignee"`
	Phone     string `json:"phone"`
	Detail    string `json:"detail"`
	IsDefault bool   `json:"isDefault"`
}
