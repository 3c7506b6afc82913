package controllers

import (
	"strconv"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

type AdminSetmealController struct {
	Catalog *services.CatalogService
}

func NewAdminSetmealController(catalog *services.CatalogService) *AdminSetmealController {
	return &AdminSetmealController{Catalog: catalog}
}

type setmealReq struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

func (req *setmealReq) toEntity() *entity.Setmeal {
	return &entity.Setmeal{
		ID:          req.ID,
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Status:      req.Status,
	}
}

// POST /admin/setmeal
func (ctl *AdminSetmealController) Create(c *gin.Context) {
	var req setmealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	m := req.toEntity()
	if err := ctl.Catalog.CreateSetmeal(c.Request.Context(), utils.CurrentUserID(c), m); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, m)
}

// PUT /admin/setmeal
func (ctl *AdminSetmealController) Update(c *gin.Context) {
	var req setmealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.ID == 0 {
		resp.BadRequest(c, "id is required")
		return
	}

	m := req.toEntity()
	if err := ctl.Catalog.UpdateSetmeal(c.Request.Context(), utils.CurrentUserID(c), m); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /admin/setmeal?ids=1,2,3
func (ctl *AdminSetmealController) Delete(c *gin.Context) {
	ids := parseIDList(c.Query("ids"))
	if len(ids) == 0 {
		resp.BadRequest(c, "ids is required")
		return
	}

	if err := ctl.Catalog.DeleteSetmeals(c.Request.Context(), ids); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// POST /admin/setmeal/status/:status?id=
func (ctl *AdminSetmealController) SetStatus(c *gin.Context) {
	status, err := strconv.Atoi(c.Param("status"))
	if err != nil || (status != entity.StatusEnabled && status != entity.StatusDisabled) {
		resp.BadRequest(c, "bad status")
		return
	}
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "id is required")
		return
	}

	if err := ctl.Catalog.SetSetmealStatus(c.Request.Context(), utils.CurrentUserID(c), uint(id), status); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /admin/setmeal/:id
func (ctl *AdminSetmealController) Detail(c *gin.Context) {
	m, err := ctl.Catalog.SetmealDetail(paramUint(c, "id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, m)
}
