package controllers

import (
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// POST /user/shoppingCart/add
func (ctl *CartController) Add(c *gin.Context) {
	var ref services.CartItemRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Cart.Add(utils.CurrentUserID(c), &ref); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// POST /user/shoppingCart/sub
func (ctl *CartController) Sub(c *gin.Context) {
	var ref services.CartItemRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Cart.Sub(utils.CurrentUserID(c), &ref); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/shoppingCart/list
func (ctl *CartController) List(c *gin.Context) {
	items, err := ctl.Cart.List(utils.CurrentUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, items)
}

// DELETE /user/shoppingCart/clean
func (ctl *CartController) Clean(c *gin.Context) {
	if err := ctl.Cart.Clean(utils.CurrentUserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}
