package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`

	Addresses []AddressBook `json:"-"`
	Orders    []Order       `json:"-"`
}
