package controllers

import (
	"strconv"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

type AdminCategoryController struct {
	Catalog *services.CatalogService
}

func NewAdminCategoryController(catalog *services.CatalogService) *AdminCategoryController {
	return &AdminCategoryController{Catalog: catalog}
}

type categoryReq struct {
	ID   uint   `json:"id"`
	Type int    `json:"type" binding:"required"`
	Name string `json:"name" binding:"required"`
	Sort int    `json:"sort"`
}

// POST /admin/category
func (ctl *AdminCategoryController) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Type != entity.CategoryDish && req.Type != entity.CategorySetmeal {
		resp.BadRequest(c, "bad category type")
		return
	}

	cat := &entity.Category{Type: req.Type, Name: req.Name, Sort: req.Sort, Status: entity.StatusEnabled}
	if err := ctl.Catalog.CreateCategory(c.Request.Context(), utils.CurrentUserID(c), cat); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, cat)
}

// PUT /admin/category
func (ctl *AdminCategoryController) Update(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.ID == 0 {
		resp.BadRequest(c, "id is required")
		return
	}

	cat := &entity.Category{ID: req.ID, Type: req.Type, Name: req.Name, Sort: req.Sort, Status: entity.StatusEnabled}
	if err := ctl.Catalog.UpdateCategory(c.Request.Context(), utils.CurrentUserID(c), cat); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /admin/category?id=
func (ctl *AdminCategoryController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "id is required")
		return
	}

	if err := ctl.Catalog.DeleteCategory(c.Request.Context(), uint(id)); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /admin/category/list?type=
func (ctl *AdminCategoryController) List(c *gin.Context) {
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
