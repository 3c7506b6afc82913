package controllers

import (
	"errors"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/repository"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddressController manages the user's address book. Thin CRUD; the order
// core only ever reads a snapshot from it.
type AddressController struct {
	Repo *repository.AddressRepository
}

func NewAddressController(repo *repository.AddressRepository) *AddressController {
	return &AddressController{Repo: repo}
}

type addressReq struct {
	Consignee string `json:"consignee" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Detail    string `json:"detail" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// POST /user/addressBook
func (ctl *AddressController) Create(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	a := entity.AddressBook{
		UserID:    utils.CurrentUserID(c),
		Consignee: req.Consignee,
		Phone:     req.Phone,
		Detail:    req.Detail,
		IsDefault: req.IsDefault,
	}
	if err := ctl.Repo.Create(&a); err != nil {
		resp.ServerError(c, err)
		return
	}
	if a.IsDefault {
		if err := ctl.Repo.SetDefault(a.UserID, a.ID); err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	resp.Created(c, a)
}

// GET /user/addressBook/list
func (ctl *AddressController) List(c *gin.Context) {
	list, err := ctl.Repo.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, list)
}

// PUT /user/addressBook/:id
func (ctl *AddressController) Update(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	userID := utils.CurrentUserID(c)
	a, err := ctl.Repo.GetForUser(userID, paramUint(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "address not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	a.Consignee = req.Consignee
	a.Phone = req.Phone
	a.Detail = req.Detail
	if err := ctl.Repo.Update(a); err != nil {
		resp.ServerError(c, err)
		return
	}
	if req.IsDefault {
		if err := ctl.Repo.SetDefault(userID, a.ID); err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	resp.OK(c, a)
}

// DELETE /user/addressBook/:id
func (ctl *AddressController) Delete(c *gin.Context) {
	if err := ctl.Repo.Delete(utils.CurrentUserID(c), paramUint(c, "id")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /user/addressBook/default/:id
func (ctl *AddressController) SetDefault(c *gin.Context) {
	if err := ctl.Repo.SetDefault(utils.CurrentUserID(c), paramUint(c, "id")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}
