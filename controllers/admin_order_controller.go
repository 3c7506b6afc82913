package controllers

import (
	"time"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/repository"
	"github.com/WA-TLE/interstellar-diet/services"

	"github.com/gin-gonic/gin"
)

// AdminOrderController is the merchant-facing order surface.
type AdminOrderController struct {
	Orders *services.OrderService
}

func NewAdminOrderController(orders *services.OrderService) *AdminOrderController {
	return &AdminOrderController{Orders: orders}
}

// GET /admin/order/conditionSearch
func (ctl *AdminOrderController) ConditionSearch(c *gin.Context) {
	f := repository.OrderSearch{
		Number: c.Query("number"),
		Phone:  c.Query("phone"),
	}
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown status")
			return
		}
		f.Status = &st
	}
	if s := c.Query("beginTime"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			f.BeginTime = &t
		}
	}
	if s := c.Query("endTime"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			f.EndTime = &t
		}
	}

	out, err := ctl.Orders.ConditionSearch(f, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/order/statistics
func (ctl *AdminOrderController) Statistics(c *gin.Context) {
	out, err := ctl.Orders.Statistics()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/order/details/:id
func (ctl *AdminOrderController) Details(c *gin.Context) {
	out, err := ctl.Orders.Detail(paramUint(c, "id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, out)
}

type confirmReq struct {
	ID uint `json:"id" binding:"required"`
}

// PUT /admin/order/confirm
func (ctl *AdminOrderController) Confirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Orders.Confirm(req.ID); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

type rejectReq struct {
	ID     uint   `json:"id" binding:"required"`
	Reason string `json:"rejectionReason" binding:"required"`
}

// PUT /admin/order/rejection
func (ctl *AdminOrderController) Rejection(c *gin.Context) {
	var req rejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Orders.Reject(c.Request.Context(), req.ID, req.Reason); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

type cancelReq struct {
	ID     uint   `json:"id" binding:"required"`
	Reason string `json:"cancelReason" binding:"required"`
}

// PUT /admin/order/cancel
func (ctl *AdminOrderController) Cancel(c *gin.Context) {
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Orders.CancelByMerchant(c.Request.Context(), req.ID, req.Reason); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/delivery/:id
func (ctl *AdminOrderController) Delivery(c *gin.Context) {
	if err := ctl.Orders.Dispatch(paramUint(c, "id")); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/complete/:id
func (ctl *AdminOrderController) Complete(c *gin.Context) {
	if err := ctl.Orders.Complete(paramUint(c, "id")); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}
