package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peoplehq/orgdir/authz"
	"github.com/peoplehq/orgdir/services"
)

// UserHandler handles user detail requests
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// GetUser handles GET /api/users/:id. The literal id "me" resolves
// to the requester's own record.
func (h *UserHandler) GetUser(c *gin.Context) {
	requesterID := c.GetString("user_id")
	targetID := c.Param("id")
	if targetID == "me" {
		targetID = requesterID
	}

	user, err := h.Service.GetUser(c.Request.Context(), requesterID, targetID)
	if err != nil {
		if errors.Is(err, authz.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "User not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "User retrieved successfully", user)
}
