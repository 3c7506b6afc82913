package controllers

import (
	"strconv"

	"github.com/WA-TLE/interstellar-diet/entity"
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/utils"

	"github.com/gin-gonic/gin"
)

type AdminEmployeeController struct {
	Auth *services.AuthService
}

func NewAdminEmployeeController(auth *services.AuthService) *AdminEmployeeController {
	return &AdminEmployeeController{Auth: auth}
}

// POST /admin/employee/login
func (ctl *AdminEmployeeController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, emp, err := ctl.Auth.LoginEmployee(req.Username, req.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "employee": emp})
}

// POST /admin/employee
func (ctl *AdminEmployeeController) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	emp, err := ctl.Auth.CreateEmployee(utils.CurrentUserID(c), req.Username, req.Password, req.Name, req.Phone)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, emp)
}

// POST /admin/employee/status/:status?id=
func (ctl *AdminEmployeeController) SetStatus(c *gin.Context) {
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

	if err := ctl.Auth.SetEmployeeStatus(utils.CurrentUserID(c), uint(id), status); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /admin/employee/page?name=&page=&limit=
func (ctl *AdminEmployeeController) Page(c *gin.Context) {
	employees, total, err := ctl.Auth.PageEmployees(c.Query("name"), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": employees, "total": total})
}
