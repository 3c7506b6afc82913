package entity

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPendingPayment     OrderStatus = "PENDING_PAYMENT"
	OrderToBeConfirmed      OrderStatus = "TO_BE_CONFIRMED"
	OrderConfirmed          OrderStatus = "CONFIRMED"
	OrderDeliveryInProgress OrderStatus = "DELIVERY_IN_PROGRESS"
	OrderCompleted          OrderStatus = "COMPLETED"
	OrderCancelled          OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPendingPayment, OrderToBeConfirmed, OrderConfirmed,
		OrderDeliveryInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// NonTerminalStatuses lists every state a merchant cancel may start from.
func NonTerminalStatuses() []OrderStatus {
	return []OrderStatus{
		OrderPendingPayment, OrderToBeConfirmed, OrderConfirmed, OrderDeliveryInProgress,
	}
}

type PayStatus string

const (
	PayUnpaid   PayStatus = "UNPAID"
	PayPaid     PayStatus = "PAID"
	PayRefunded PayStatus = "REFUNDED"
)

// Enable/disable status shared by dishes, setmeals, categories and
// employee accounts. An enabled dish or setmeal is sellable.
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// Category types.
const (
	CategoryDish    = 1
	CategorySetmeal = 2
)
