package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"consent-backend/services"
	"consent-backend/utils"
)

type AuthController struct {
	Admins *services.AdminService
}

func NewAuthController(admins *services.AdminService) *AuthController {
	return &AuthController{Admins: admins}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	token, admin, err := ac.Admins.Login(strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": admin.ID, "username": admin.Username},
	})
}
