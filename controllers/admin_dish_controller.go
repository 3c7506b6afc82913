package controllers

import (
	"strconv"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

// AdminDishController mutates the dish catalog; every write invalidates the
// affected listing cache partitions.
type AdminDishController struct {
	Catalog *services.CatalogService
}

func NewAdminDishController(catalog *services.CatalogService) *AdminDishController {
	return &AdminDishController{Catalog: catalog}
}

type dishReq struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Flavors     []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"flavors"`
}

func (req *dishReq) toEntity() *entity.Dish {
	d := &entity.Dish{
		ID:          req.ID,
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Status:      req.Status,
	}
	for _, f := range req.Flavors {
		d.Flavors = append(d.Flavors, entity.DishFlavor{Name: f.Name, Value: f.Value})
	}
	return d
}

// POST /admin/dish
func (ctl *AdminDishController) Create(c *gin.Context) {
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	d := req.toEntity()
	if err := ctl.Catalog.CreateDish(c.Request.Context(), utils.CurrentUserID(c), d); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, d)
}

// PUT /admin/dish
func (ctl *AdminDishController) Update(c *gin.Context) {
	var req dishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.ID == 0 {
		resp.BadRequest(c, "id is required")
		return
	}

	d := req.toEntity()
	if err := ctl.Catalog.UpdateDish(c.Request.Context(), utils.CurrentUserID(c), d); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, d)
}

// DELETE /admin/dish?ids=1,2,3
func (ctl *AdminDishController) Delete(c *gin.Context) {
	ids := parseIDList(c.Query("ids"))
	if len(ids) == 0 {
		resp.BadRequest(c, "ids is required")
		return
	}

	if err := ctl.Catalog.DeleteDishes(c.Request.Context(), ids); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// POST /admin/dish/status/:status?id=
func (ctl *AdminDishController) SetStatus(c *gin.Context) {
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

	if err := ctl.Catalog.SetDishStatus(c.Request.Context(), utils.CurrentUserID(c), uint(id), status); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /admin/dish/page?name=&categoryId=&page=&limit=
func (ctl *AdminDishController) Page(c *gin.Context) {
	var categoryID *uint
	if s := c.Query("categoryId"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			id := uint(v)
			categoryID = &id
		}
	}

	dishes, total, err := ctl.Catalog.PageDishes(c.Query("name"), categoryID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": dishes, "total": total})
}

// GET /admin/dish/:id
func (ctl *AdminDishController) Detail(c *gin.Context) {
	d, err := ctl.Catalog.DishDetail(paramUint(c, "id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, d)
}

func parseIDList(s string) []uint {
	var ids []uint
	for _, part := range splitComma(s) {
		if v, err := strconv.ParseUint(part, 10, 64); err == nil {
			ids = append(ids, uint(v))
		}
	}
	return ids
}
