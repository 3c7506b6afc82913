package services

import (
	"context"

	"github.com/google/uuid"
)

// PrepayResult is the opaque token handed back to the client to complete
// payment with the provider.
type PrepayResult struct {
	PrepayID string `json:"prepayId"`
	Package  string `json:"package"`
}

// PaymentGateway is the external payment provider. Calls may block and fail;
// a failed call must leave the order exactly as it was.
type PaymentGateway interface {
	Prepay(ctx context.Context, orderNumber string, amount int64, description, payer string) (*PrepayResult, error)
	Refund(ctx context.Context, orderNumber, refundNumber string, amount, origAmount int64) error
}

// MockGateway accepts every payment and refund. Stands in until a real
// provider is wired.
type MockGateway struct{}

func (MockGateway) Prepay(_ context.Context, orderNumber string, _ int64, _, _ string) (*PrepayResult, error) {
	return &PrepayResult{
		PrepayID: uuid.NewString(),
		Package:  "prepay_id=" + orderNumber,
	}, nil
}

func (MockGateway) Refund(context.Context, string, string, int64, int64) error {
	return nil
}
