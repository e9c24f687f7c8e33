package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/api/response"
	"valet_parking/internal/domain"
	"valet_parking/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(as *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var dto domain.SignupDTO
	if !bindJSON(c, &dto) {
		return
	}
	res, err := h.authService.Signup(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, "AuthHandler.Signup", err)
		return
	}
	response.OK(c, http.StatusCreated, "User created successfully", res)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var dto domain.LoginDTO
	if !bindJSON(c, &dto) {
		return
	}
	res, err := h.authService.Login(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, "AuthHandler.Login", err)
		return
	}
	response.OK(c, http.StatusOK, "Login successful", res)
}
