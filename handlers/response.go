package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peoplehq/orgdir/authz"
	"github.com/peoplehq/orgdir/services"
)

// Response is the envelope every successful call uses.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// respondSuccess writes the success envelope
func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Status: "success", Message: message, Data: data})
}

// respondError writes the failure envelope
func respondError(c *gin.Context, code int, status, message string) {
	c.JSON(code, Response{Status: status, Message: message})
}

// respondValidation writes the aggregated field errors as HTTP 422
func respondValidation(c *gin.Context, verr *services.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
}

// respondServiceError maps domain errors onto the HTTP taxonomy.
// Forbidden responses never describe the resource.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, authz.ErrForbidden):
		respondError(c, http.StatusForbidden, "Forbidden", "You are not authorized to access this resource")
	case errors.Is(err, authz.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", "Resource not found")
	case errors.Is(err, authz.ErrAlreadyMember):
		respondError(c, http.StatusBadRequest, "Bad Request", "User is already added to this organisation")
	case errors.Is(err, authz.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Bad request", "Authentication failed")
	default:
		respondError(c, http.StatusInternalServerError, "error", err.Error())
	}
}
