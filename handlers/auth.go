package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peoplehq/orgdir/services"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	Service *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	result, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Registration successful", result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		// Same shape as a credential mismatch so a missing field
		// reveals nothing either.
		respondError(c, http.StatusUnauthorized, "Bad request", "Authentication failed")
		return
	}

	result, err := h.Service.Login(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", result)
}
