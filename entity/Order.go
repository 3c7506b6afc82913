package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Number string `json:"number" gorm:"uniqueIndex"`

	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"`

	AddressBookID uint `json:"addressBookId"`

	Status    OrderStatus `json:"status" gorm:"index"`
	PayStatus PayStatus   `json:"payStatus"`

	// Sum of item amount*number, fixed at submission and never recomputed.
	Amount int64  `json:"amount"`
	Remark string `json:"remark"`

	// Address snapshot copied from the address book at submission time.
	Consignee string `json:"consignee"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`

	OrderTime    time.Time  `json:"orderTime"`
	CheckoutTime *time.Time `json:"checkoutTime"`
	CancelTime   *time.Time `json:"cancelTime"`

	CancelReason    string `json:"cancelReason"`
	RejectionReason string `json:"rejectionReason"`

	Items []OrderItem `json:"-" gorm:"foreignKey:OrderID"`
}
