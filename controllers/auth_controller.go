package controllers

import (
	"github.com/WA-TLE/interstellar-diet/pkg/resp"
	"github.com/WA-TLE/interstellar-diet/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// POST /user/user/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.Auth.Register(req.Username, req.Password, req.Name, req.Phone)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "username": user.Username})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /user/user/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.Auth.LoginUser(req.Username, req.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "id": user.ID, "username": user.Username, "name": user.Name})
}
