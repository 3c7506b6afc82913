package tasks

import (
	"context"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"

	"go.uber.org/zap"
)

// CancelReasonTimeout is written by the payment sweep.
const CancelReasonTimeout = "payment timeout"

// OrderTask reconciles orders stuck past a deadline. Every transition is a
// conditional write keyed on the source state, so a second instance running
// the same sweep is a no-op, not a double side effect.
type OrderTask struct {
	Repo *repository.OrderRepository
	Log  *zap.Logger

	// Externally tunable windows and periods.
	PaymentWindow  time.Duration
	DeliveryWindow time.Duration
	PaymentEvery   time.Duration
	DeliveryEvery  time.Duration
}

func NewOrderTask(repo *repository.OrderRepository, log *zap.Logger, paymentWindow, deliveryWindow, paymentEvery, deliveryEvery time.Duration) *OrderTask {
	return &OrderTask{
		Repo:           repo,
		Log:            log,
		PaymentWindow:  paymentWindow,
		DeliveryWindow: deliveryWindow,
		PaymentEvery:   paymentEvery,
		DeliveryEvery:  deliveryEvery,
	}
}

// Start launches both sweeps on their own tickers until ctx is done.
func (t *OrderTask) Start(ctx context.Context) {
	go t.loop(ctx, t.PaymentEvery, t.ProcessTimeoutOrders)
	go t.loop(ctx, t.DeliveryEvery, t.ProcessDeliveryOrders)
}

func (t *OrderTask) loop(ctx context.Context, every time.Duration, sweep func(time.Time)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sweep(now)
		}
	}
}

// ProcessTimeoutOrders cancels orders unpaid past the payment window. No
// refund: nothing was collected.
func (t *OrderTask) ProcessTimeoutOrders(now time.Time) {
	deadline := now.Add(-t.PaymentWindow)
	orders, err := t.Repo.ListByStatusAndOrderTimeBefore(entity.OrderPendingPayment, deadline)
	if err != nil {
		t.Log.Error("payment sweep: list candidates", zap.Error(err))
		return
	}

	for _, o := range orders {
		ok, err := t.Repo.UpdateFromStatus(o.ID, []entity.OrderStatus{entity.OrderPendingPayment}, map[string]any{
			"status":        entity.OrderCancelled,
			"cancel_time":   now,
			"cancel_reason": CancelReasonTimeout,
		})
		if err != nil {
			// One stuck order must not abort the batch; it stays
			// eligible for the next run.
			t.Log.Error("payment sweep: cancel order",
				zap.Uint("orderId", o.ID), zap.Error(err))
			continue
		}
		if !ok {
			// Already moved on by a payment or another instance.
			continue
		}
		t.Log.Info("payment sweep: cancelled unpaid order",
			zap.Uint("orderId", o.ID), zap.String("number", o.Number))
	}
}

// ProcessDeliveryOrders completes deliveries running past the delivery
// window, treating a long-running delivery as delivered.
func (t *OrderTask) ProcessDeliveryOrders(now time.Time) {
	deadline := now.Add(-t.DeliveryWindow)
	orders, err := t.Repo.ListByStatusAndOrderTimeBefore(entity.OrderDeliveryInProgress, deadline)
	if err != nil {
		t.Log.Error("delivery sweep: list candidates", zap.Error(err))
		return
	}

	for _, o := range orders {
		ok, err := t.Repo.UpdateFromStatus(o.ID, []entity.OrderStatus{entity.OrderDeliveryInProgress}, map[string]any{
			"status": entity.OrderCompleted,
		})
		if err != nil {
			t.Log.Error("delivery sweep: complete order",
				zap.Uint("orderId", o.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		t.Log.Info("delivery sweep: completed order",
			zap.Uint("orderId", o.ID), zap.String("number", o.Number))
	}
}
