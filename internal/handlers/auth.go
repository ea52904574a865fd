package handlers

import (
	"net/http"
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService *services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenTTL:    tokenTTL,
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Nickname *string `json:"nickname"`
		Password string  `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	person, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPersonDTO(*person))
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	token, person, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		Person:    dto.ToPersonDTO(*person),
		ExpiresAt: time.Now().Add(h.tokenTTL),
	})
}
