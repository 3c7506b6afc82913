package services

import (
	"errors"
	"fmt"

	"github.com/WA-TLE/interstellar-diet/entity"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrAddressIncomplete = errors.New("address is missing consignee or detail")
	ErrCartEmpty         = errors.New("shopping cart is empty")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrUserExists        = errors.New("username already registered")
	ErrBadCredentials    = errors.New("invalid credentials")
	ErrCategoryInUse     = errors.New("category still has items")
	ErrItemNotFound      = errors.New("item not found")
)

// StatusError is a guard violation: a transition was requested from a state
// outside its allowed source set, or the conditional write lost a race.
type StatusError struct {
	OrderID   uint
	Current   entity.OrderStatus
	Requested string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order %d: cannot %s from status %s", e.OrderID, e.Requested, e.Current)
}

// IsGuardViolation reports whether err is a transition guard failure.
func IsGuardViolation(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
