package controllers

import (
	"strconv"

	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"

	"github.com/gin-gonic/gin"
)

// DishController is the customer browse surface; listings come through the
// read-through cache.
type DishController struct {
	Catalog *services.CatalogService
}

func NewDishController(catalog *services.CatalogService) *DishController {
	return &DishController{Catalog: catalog}
}

// GET /user/dish/list?categoryId=
func (ctl *DishController) List(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Query("categoryId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "categoryId is required")
		return
	}

	dishes, err := ctl.Catalog.ListSellableDishes(c.Request.Context(), uint(categoryID))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, dishes)
}

// GET /user/setmeal/list?categoryId=
func (ctl *DishController) ListSetmeals(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Query("categoryId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "categoryId is required")
		return
	}

	list, err := ctl.Catalog.ListSellableSetmeals(c.Request.Context(), uint(categoryID))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /user/category/list?type=
func (ctl *DishController) ListCategories(c *gin.Context) {
	var typ *int
	if s := c.Query("type"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			typ = &v
		}
	}

	list, err := ctl.Catalog.ListCategories(typ)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, list)
}
