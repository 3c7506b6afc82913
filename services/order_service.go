package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"
	"github.com/WA-TLE/interstellar-diet/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CancelReasonCustomer is written on customer-initiated cancels.
const CancelReasonCustomer = "customer cancelled"

// OrderService owns every legal transition of an order. All writes that
// change status go through conditional updates keyed on the expected source
// state, so racing actors and duplicate sweepers collapse to one winner.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	AddrRepo *repository.AddressRepository
	Gateway  PaymentGateway
	Notify   Notifier
	Log      *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	addrRepo *repository.AddressRepository,
	gateway PaymentGateway,
	notify Notifier,
	log *zap.Logger,
) *OrderService {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, AddrRepo: addrRepo,
		Gateway: gateway, Notify: notify, Log: log,
	}
}

// ----- DTOs -----

type SubmitOrderReq struct {
	AddressBookID uint   `json:"addressBookId" binding:"required"`
	Remark        string `json:"remark"`
}

type SubmitOrderRes struct {
	ID        uint      `json:"id"`
	Number    string    `json:"number"`
	Amount    int64     `json:"amount"`
	OrderTime time.Time `json:"orderTime"`
}

type OrderVO struct {
	entity.Order
	Items []entity.OrderItem `json:"items"`
}

type OrderStatistics struct {
	ToBeConfirmed      int64 `json:"toBeConfirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"deliveryInProgress"`
}

// ----- Submission -----

// Submit turns the user's cart into a durable order. Address snapshot, order
// row, line items and cart clear commit as one transaction; the cart rows read
// up front are the authoritative line items and are not re-read mid-tx.
func (s *OrderService) Submit(userID uint, req *SubmitOrderReq) (*SubmitOrderRes, error) {
	addr, err := s.AddrRepo.GetForUser(userID, req.AddressBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if addr.Consignee == "" || addr.Detail == "" {
		return nil, ErrAddressIncomplete
	}

	cartItems, err := s.CartRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	var amount int64
	for _, it := range cartItems {
		amount += it.Amount * int64(it.Number)
	}

	now := time.Now()
	order := entity.Order{
		Number:        utils.NewOrderNumber(now),
		UserID:        userID,
		AddressBookID: addr.ID,
		Status:        entity.OrderPendingPayment,
		PayStatus:     entity.PayUnpaid,
		Amount:        amount,
		Remark:        req.Remark,
		Consignee:     addr.Consignee,
		Phone:         addr.Phone,
		Address:       addr.Detail,
		OrderTime:     now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}

		items := make([]entity.OrderItem, 0, len(cartItems))
		for _, it := range cartItems {
			items = append(items, entity.OrderItem{
				OrderID:   order.ID,
				DishID:    it.DishID,
				SetmealID: it.SetmealID,
				Flavor:    it.Flavor,
				Name:      it.Name,
				Image:     it.Image,
				Amount:    it.Amount,
				Number:    it.Number,
			})
		}
		if err := s.Repo.CreateItems(tx, items); err != nil {
			return err
		}

		return s.CartRepo.Clear(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("order submitted",
		zap.Uint("orderId", order.ID),
		zap.String("number", order.Number),
		zap.Int64("amount", order.Amount))

	return &SubmitOrderRes{
		ID: order.ID, Number: order.Number, Amount: order.Amount, OrderTime: order.OrderTime,
	}, nil
}

// ----- Payment -----

// Payment asks the gateway for a prepay token. A gateway failure leaves the
// order untouched; the caller may retry the whole flow.
func (s *OrderService) Payment(ctx context.Context, userID uint, orderNumber string) (*PrepayResult, error) {
	o, err := s.Repo.GetByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if o.PayStatus == entity.PayPaid {
		return nil, ErrAlreadyPaid
	}

	res, err := s.Gateway.Prepay(ctx, o.Number, o.Amount, "takeout order", fmt.Sprint(userID))
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	return res, nil
}

// PaySuccess is the payment callback: the only way an order leaves
// PendingPayment forward. Applies nothing unless the order is still unpaid.
func (s *OrderService) PaySuccess(orderNumber string) error {
	o, err := s.Repo.GetByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	now := time.Now()
	ok, err := s.Repo.UpdateFromStatus(o.ID, []entity.OrderStatus{entity.OrderPendingPayment}, map[string]any{
		"status":        entity.OrderToBeConfirmed,
		"pay_status":    entity.PayPaid,
		"checkout_time": now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(o.ID, "pay")
	}

	s.Notify.PushOrderMsg(NotifyNewOrder, o.ID, "order number: "+orderNumber)
	return nil
}

// ----- Merchant transitions -----

func (s *OrderService) Confirm(orderID uint) error {
	ok, err := s.Repo.UpdateFromStatus(orderID, []entity.OrderStatus{entity.OrderToBeConfirmed}, map[string]any{
		"status": entity.OrderConfirmed,
	})
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "confirm")
	}
	return nil
}

// Reject cancels a paid-for but unaccepted order, refunding what was
// collected. Only ToBeConfirmed orders can be rejected.
func (s *OrderService) Reject(ctx context.Context, orderID uint, reason string) error {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if o.Status != entity.OrderToBeConfirmed {
		return &StatusError{OrderID: orderID, Current: o.Status, Requested: "reject"}
	}

	updates := map[string]any{
		"status":           entity.OrderCancelled,
		"cancel_time":      time.Now(),
		"rejection_reason": reason,
		"cancel_reason":    reason,
	}
	if o.PayStatus == entity.PayPaid {
		if err := s.Gateway.Refund(ctx, o.Number, o.Number, o.Amount, o.Amount); err != nil {
			return fmt.Errorf("refund: %w", err)
		}
		updates["pay_status"] = entity.PayRefunded
	}

	ok, err := s.Repo.UpdateFromStatus(orderID, []entity.OrderStatus{entity.OrderToBeConfirmed}, updates)
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "reject")
	}
	return nil
}

// CancelByCustomer direct-cancels only unpaid or unaccepted orders; anything
// further along needs the merchant path. Refunds when payment was collected.
func (s *OrderService) CancelByCustomer(ctx context.Context, userID, orderID uint) error {
	o, err := s.Repo.GetForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	allowed := []entity.OrderStatus{entity.OrderPendingPayment, entity.OrderToBeConfirmed}
	if o.Status != entity.OrderPendingPayment && o.Status != entity.OrderToBeConfirmed {
		return &StatusError{OrderID: orderID, Current: o.Status, Requested: "cancel"}
	}

	updates := map[string]any{
		"status":        entity.OrderCancelled,
		"cancel_time":   time.Now(),
		"cancel_reason": CancelReasonCustomer,
	}
	if o.PayStatus == entity.PayPaid {
		if err := s.Gateway.Refund(ctx, o.Number, o.Number, o.Amount, o.Amount); err != nil {
			return fmt.Errorf("refund: %w", err)
		}
		updates["pay_status"] = entity.PayRefunded
	}

	ok, err := s.Repo.UpdateFromStatus(orderID, allowed, updates)
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "cancel")
	}
	return nil
}

// CancelByMerchant may cancel any non-terminal order.
func (s *OrderService) CancelByMerchant(ctx context.Context, orderID uint, reason string) error {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if o.Status.Terminal() {
		return &StatusError{OrderID: orderID, Current: o.Status, Requested: "cancel"}
	}

	updates := map[string]any{
		"status":        entity.OrderCancelled,
		"cancel_time":   time.Now(),
		"cancel_reason": reason,
	}
	if o.PayStatus == entity.PayPaid {
		if err := s.Gateway.Refund(ctx, o.Number, o.Number, o.Amount, o.Amount); err != nil {
			return fmt.Errorf("refund: %w", err)
		}
		updates["pay_status"] = entity.PayRefunded
	}

	ok, err := s.Repo.UpdateFromStatus(orderID, entity.NonTerminalStatuses(), updates)
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "cancel")
	}
	return nil
}

func (s *OrderService) Dispatch(orderID uint) error {
	ok, err := s.Repo.UpdateFromStatus(orderID, []entity.OrderStatus{entity.OrderConfirmed}, map[string]any{
		"status": entity.OrderDeliveryInProgress,
	})
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "dispatch")
	}
	return nil
}

func (s *OrderService) Complete(orderID uint) error {
	ok, err := s.Repo.UpdateFromStatus(orderID, []entity.OrderStatus{entity.OrderDeliveryInProgress}, map[string]any{
		"status": entity.OrderCompleted,
	})
	if err != nil {
		return err
	}
	if !ok {
		return s.guardErr(orderID, "complete")
	}
	return nil
}

// Remind nudges the merchant about a pending order. No state change.
func (s *OrderService) Remind(userID, orderID uint) error {
	o, err := s.Repo.GetForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	s.Notify.PushOrderMsg(NotifyReminder, o.ID, "order number: "+o.Number)
	return nil
}

// ----- Queries -----

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderVO, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.withItems(o)
}

func (s *OrderService) Detail(orderID uint) (*OrderVO, error) {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.withItems(o)
}

func (s *OrderService) withItems(o *entity.Order) (*OrderVO, error) {
	items, err := s.Repo.ListItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderVO{Order: *o, Items: items}, nil
}

type OrderPage struct {
	Items []OrderVO `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

func (s *OrderService) HistoryPage(userID uint, status *entity.OrderStatus, page, limit int) (*OrderPage, error) {
	orders, total, err := s.Repo.PageForUser(userID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return s.toPage(orders, total, page, limit)
}

func (s *OrderService) ConditionSearch(f repository.OrderSearch, page, limit int) (*OrderPage, error) {
	orders, total, err := s.Repo.PageSearch(f, page, limit)
	if err != nil {
		return nil, err
	}
	return s.toPage(orders, total, page, limit)
}

func (s *OrderService) toPage(orders []entity.Order, total int64, page, limit int) (*OrderPage, error) {
	items := make([]OrderVO, 0, len(orders))
	for i := range orders {
		vo, err := s.withItems(&orders[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *vo)
	}
	return &OrderPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Statistics counts orders per in-flight state for the merchant dashboard.
func (s *OrderService) Statistics() (*OrderStatistics, error) {
	toBeConfirmed, err := s.Repo.CountByStatus(entity.OrderToBeConfirmed)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.Repo.CountByStatus(entity.OrderConfirmed)
	if err != nil {
		return nil, err
	}
	delivering, err := s.Repo.CountByStatus(entity.OrderDeliveryInProgress)
	if err != nil {
		return nil, err
	}
	return &OrderStatistics{
		ToBeConfirmed:      toBeConfirmed,
		Confirmed:          confirmed,
		DeliveryInProgress: delivering,
	}, nil
}

// Repetition copies a past order's line items back into the user's cart.
func (s *OrderService) Repetition(userID, orderID uint) error {
	o, err := s.Repo.GetForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	items, err := s.Repo.ListItems(o.ID)
	if err != nil {
		return err
	}

	cartItems := make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		cartItems = append(cartItems, entity.CartItem{
			UserID:    userID,
			DishID:    it.DishID,
			SetmealID: it.SetmealID,
			Flavor:    it.Flavor,
			Name:      it.Name,
			Image:     it.Image,
			Amount:    it.Amount,
			Number:    it.Number,
		})
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.InsertBatch(tx, cartItems)
	})
}

// guardErr reclassifies a failed conditional write: missing row vs. a state
// that fell outside the allowed source set.
func (s *OrderService) guardErr(orderID uint, requested string) error {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return &StatusError{OrderID: orderID, Current: o.Status, Requested: requested}
}
