package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
	"github.com/xxxsen/skillmatch/internal/pkg/response"
	"github.com/xxxsen/skillmatch/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	_, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		response.Message(c, http.StatusCreated, "User registered successfully")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusBadRequest, "Email or username already exists")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "Missing required fields")
	default:
		handleError(c, err)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	_, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		response.JSON(c, http.StatusOK, gin.H{"token": token, "message": "Login successful"})
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "Missing required fields")
	default:
		handleError(c, err)
	}
}
