package controllers

import (
	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

// OrderController is the customer-facing order surface.
type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /user/order/submit
func (ctl *OrderController) Submit(c *gin.Context) {
	var req services.SubmitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Orders.Submit(utils.CurrentUserID(c), &req)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, out)
}

type paymentReq struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
}

// PUT /user/order/payment
func (ctl *OrderController) Payment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Orders.Payment(c.Request.Context(), utils.CurrentUserID(c), req.OrderNumber)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /user/order/paySuccess, the payment provider callback.
func (ctl *OrderController) PaySuccess(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Orders.PaySuccess(req.OrderNumber); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/order/historyOrders?page=&limit=&status=
func (ctl *OrderController) History(c *gin.Context) {
	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown status")
			return
		}
		status = &st
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	out, err := ctl.Orders.HistoryPage(utils.CurrentUserID(c), status, page, limit)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /user/order/orderDetail/:id
func (ctl *OrderController) Detail(c *gin.Context) {
	out, err := ctl.Orders.DetailForUser(utils.CurrentUserID(c), paramUint(c, "id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

// PUT /user/order/cancel/:id
func (ctl *OrderController) Cancel(c *gin.Context) {
	err := ctl.Orders.CancelByCustomer(c.Request.Context(), utils.CurrentUserID(c), paramUint(c, "id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// POST /user/order/repetition/:id
func (ctl *OrderController) Repetition(c *gin.Context) {
	if err := ctl.Orders.Repetition(utils.CurrentUserID(c), paramUint(c, "id")); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/order/reminder/:id
func (ctl *OrderController) Reminder(c *gin.Context) {
	if err := ctl.Orders.Remind(utils.CurrentUserID(c), paramUint(c, "id")); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}
