package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/services"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Auth.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	user, tenants, err := ac.Auth.Profile(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"user": user, "stores": tenants})
}
