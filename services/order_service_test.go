package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Employee{},
		&entity.AddressBook{},
		&entity.Category{}, &entity.Dish{}, &entity.DishFlavor{}, &entity.Setmeal{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

type recordingGateway struct {
	refunds   []string
	refundErr error
}

func (g *recordingGateway) Prepay(context.Context, string, int64, string, string) (*PrepayResult, error) {
	return &PrepayResult{PrepayID: "test"}, nil
}

func (g *recordingGateway) Refund(_ context.Context, orderNumber, _ string, _, _ int64) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, orderNumber)
	return nil
}

type recordingNotifier struct {
	types  []int
	orders []uint
}

func (n *recordingNotifier) PushOrderMsg(typ int, orderID uint, _ string) {
	n.types = append(n.types, typ)
	n.orders = append(n.orders, orderID)
}

type orderFixture struct {
	db      *gorm.DB
	svc     *OrderService
	gateway *recordingGateway
	notify  *recordingNotifier
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	gw := &recordingGateway{}
	nf := &recordingNotifier{}
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewAddressRepository(db),
		gw, nf,
		zap.NewNop(),
	)
	return &orderFixture{db: db, svc: svc, gateway: gw, notify: nf}
}

func (f *orderFixture) seedAddress(t *testing.T, userID uint) *entity.AddressBook {
	t.Helper()
	addr := &entity.AddressBook{
		UserID:    userID,
		Consignee: "Zhang San",
		Phone:     "13800000000",
		Detail:    "1 Demo Street",
	}
	require.NoError(t, f.db.Create(addr).Error)
	return addr
}

func (f *orderFixture) seedCart(t *testing.T, userID uint, items ...entity.CartItem) {
	t.Helper()
	for i := range items {
		items[i].UserID = userID
		require.NoError(t, f.db.Create(&items[i]).Error)
	}
}

func dishRef(id uint) *uint { return &id }

func TestSubmit(t *testing.T) {
	f := newOrderFixture(t)
	addr := f.seedAddress(t, 1)
	f.seedCart(t, 1,
		entity.CartItem{DishID: dishRef(10), Name: "Kung Pao Chicken", Amount: 2800, Number: 2},
		entity.CartItem{DishID: dishRef(11), Name: "Rice", Amount: 300, Number: 3},
	)

	res, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: addr.ID, Remark: "no peanuts"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Number)
	assert.Equal(t, int64(2800*2+300*3), res.Amount)

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderPendingPayment, o.Status)
	assert.Equal(t, entity.PayUnpaid, o.PayStatus)
	assert.Equal(t, "Zhang San", o.Consignee)
	assert.Equal(t, "1 Demo Street", o.Address)

	var items []entity.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", o.ID).Find(&items).Error)
	assert.Len(t, items, 2)

	var cartCount int64
	require.NoError(t, f.db.Model(&entity.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error)
	assert.Zero(t, cartCount, "cart must be emptied in the same transaction")
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	addr := f.seedAddress(t, 1)

	_, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: addr.ID})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestSubmitMissingAddress(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, 1, entity.CartItem{DishID: dishRef(10), Name: "Rice", Amount: 300, Number: 1})

	_, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: 999})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestSubmitIncompleteAddress(t *testing.T) {
	f := newOrderFixture(t)
	addr := &entity.AddressBook{UserID: 1, Phone: "13800000000"}
	require.NoError(t, f.db.Create(addr).Error)
	f.seedCart(t, 1, entity.CartItem{DishID: dishRef(10), Name: "Rice", Amount: 300, Number: 1})

	_, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: addr.ID})
	assert.ErrorIs(t, err, ErrAddressIncomplete)
}

func TestSubmitForeignAddress(t *testing.T) {
	f := newOrderFixture(t)
	addr := f.seedAddress(t, 2)
	f.seedCart(t, 1, entity.CartItem{DishID: dishRef(10), Name: "Rice", Amount: 300, Number: 1})

	_, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: addr.ID})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func submitOrder(t *testing.T, f *orderFixture, userID uint) *SubmitOrderRes {
	t.Helper()
	addr := f.seedAddress(t, userID)
	f.seedCart(t, userID, entity.CartItem{DishID: dishRef(10), Name: "Rice", Amount: 300, Number: 1})
	res, err := f.svc.Submit(userID, &SubmitOrderReq{AddressBookID: addr.ID})
	require.NoError(t, err)
	return res
}

func TestFullLifecycle(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	require.NoError(t, f.svc.PaySuccess(res.Number))
	require.Equal(t, []int{NotifyNewOrder}, f.notify.types, "merchant must hear about the paid order")

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderToBeConfirmed, o.Status)
	assert.Equal(t, entity.PayPaid, o.PayStatus)
	assert.NotNil(t, o.CheckoutTime)

	require.NoError(t, f.svc.Confirm(res.ID))
	require.NoError(t, f.svc.Dispatch(res.ID))
	require.NoError(t, f.svc.Complete(res.ID))

	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderCompleted, o.Status)
}

func TestPaySuccessTwice(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	require.NoError(t, f.svc.PaySuccess(res.Number))
	err := f.svc.PaySuccess(res.Number)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.OrderToBeConfirmed, se.Current)
	assert.Len(t, f.notify.types, 1, "a replayed callback must not re-notify")
}

func TestConfirmSkippingPayment(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	err := f.svc.Confirm(res.ID)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.OrderPendingPayment, se.Current)
}

func TestConfirmUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)
	assert.ErrorIs(t, f.svc.Confirm(424242), ErrOrderNotFound)
}

func TestCancelByCustomerUnpaid(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	require.NoError(t, f.svc.CancelByCustomer(context.Background(), 1, res.ID))

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, entity.PayUnpaid, o.PayStatus, "nothing collected, nothing refunded")
	assert.Equal(t, CancelReasonCustomer, o.CancelReason)
	assert.Empty(t, f.gateway.refunds)
}

func TestCancelByCustomerPaidRefunds(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))

	require.NoError(t, f.svc.CancelByCustomer(context.Background(), 1, res.ID))

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, entity.PayRefunded, o.PayStatus)
	assert.Equal(t, []string{res.Number}, f.gateway.refunds)
}

func TestCancelByCustomerAfterDispatch(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))
	require.NoError(t, f.svc.Confirm(res.ID))
	require.NoError(t, f.svc.Dispatch(res.ID))

	err := f.svc.CancelByCustomer(context.Background(), 1, res.ID)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.OrderDeliveryInProgress, se.Current)

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderDeliveryInProgress, o.Status, "a refused cancel must not touch the order")
}

func TestCancelByCustomerForeignOrder(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	err := f.svc.CancelByCustomer(context.Background(), 2, res.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRejectPaidOrder(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))

	require.NoError(t, f.svc.Reject(context.Background(), res.ID, "out of stock"))

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, entity.PayRefunded, o.PayStatus)
	assert.Equal(t, "out of stock", o.RejectionReason)
	assert.Equal(t, []string{res.Number}, f.gateway.refunds)
}

func TestRejectOnlyFromToBeConfirmed(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	err := f.svc.Reject(context.Background(), res.ID, "out of stock")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.OrderPendingPayment, se.Current)
}

func TestRejectRefundFailureLeavesOrder(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))
	f.gateway.refundErr = errors.New("provider down")

	err := f.svc.Reject(context.Background(), res.ID, "out of stock")
	require.Error(t, err)

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderToBeConfirmed, o.Status, "failed refund must leave the order untouched")
	assert.Equal(t, entity.PayPaid, o.PayStatus)
}

func TestCancelByMerchantInFlight(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))
	require.NoError(t, f.svc.Confirm(res.ID))
	require.NoError(t, f.svc.Dispatch(res.ID))

	require.NoError(t, f.svc.CancelByMerchant(context.Background(), res.ID, "rider unavailable"))

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, entity.PayRefunded, o.PayStatus)
}

func TestCancelByMerchantTerminal(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.CancelByCustomer(context.Background(), 1, res.ID))

	err := f.svc.CancelByMerchant(context.Background(), res.ID, "again")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, entity.OrderCancelled, se.Current)
}

func TestPaymentAlreadyPaid(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))

	_, err := f.svc.Payment(context.Background(), 1, res.Number)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestRemind(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))
	f.notify.types = nil

	require.NoError(t, f.svc.Remind(1, res.ID))
	assert.Equal(t, []int{NotifyReminder}, f.notify.types)

	var o entity.Order
	require.NoError(t, f.db.First(&o, res.ID).Error)
	assert.Equal(t, entity.OrderToBeConfirmed, o.Status, "reminding changes nothing")
}

func TestRepetition(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	require.NoError(t, f.svc.Repetition(1, res.ID))

	var items []entity.CartItem
	require.NoError(t, f.db.Where("user_id = ?", 1).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, int64(300), items[0].Amount)
}

func TestHistoryPage(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	f.seedCart(t, 1, entity.CartItem{DishID: dishRef(11), Name: "Noodles", Amount: 1500, Number: 1})
	addr := &entity.AddressBook{}
	require.NoError(t, f.db.First(addr, "user_id = ?", 1).Error)
	_, err := f.svc.Submit(1, &SubmitOrderReq{AddressBookID: addr.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.PaySuccess(res.Number))

	page, err := f.svc.HistoryPage(1, nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	status := entity.OrderToBeConfirmed
	page, err = f.svc.HistoryPage(1, &status, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Len(t, page.Items[0].Items, 1)
}

func TestStatistics(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)
	require.NoError(t, f.svc.PaySuccess(res.Number))

	stats, err := f.svc.Statistics()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ToBeConfirmed)
	assert.EqualValues(t, 0, stats.Confirmed)
	assert.EqualValues(t, 0, stats.DeliveryInProgress)
}

func TestConditionSearch(t *testing.T) {
	f := newOrderFixture(t)
	res := submitOrder(t, f, 1)

	page, err := f.svc.ConditionSearch(repository.OrderSearch{Number: res.Number}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	begin := time.Now().Add(time.Hour)
	page, err = f.svc.ConditionSearch(repository.OrderSearch{BeginTime: &begin}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}
