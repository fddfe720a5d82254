package controllers

import (
	"net/http"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/session
func (ac *AuthController) CreateSession(c *gin.Context) {
	user, token, err := ac.Auth.CreateAnonymousSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": user.ID,
		"token":   token,
	})
}
