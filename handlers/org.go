package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peoplehq/orgdir/authz"
)

// OrgHandler handles organisation HTTP requests
type OrgHandler struct {
	Service *authz.OrgService
}

// NewOrgHandler creates a new OrgHandler
func NewOrgHandler(service *authz.OrgService) *OrgHandler {
	return &OrgHandler{Service: service}
}

// ListOrgs handles GET /api/organisations
func (h *OrgHandler) ListOrgs(c *gin.Context) {
	userID := c.GetString("user_id")

	orgs, err := h.Service.ListUserOrgs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Organisations retrieved successfully", gin.H{"organisations": orgs})
}

// CreateOrg handles POST /api/organisations
func (h *OrgHandler) CreateOrg(c *gin.Context) {
	userID := c.GetString("user_id")

	var input authz.CreateOrgInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	org, err := h.Service.CreateOrg(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Organisation created successfully", org)
}

// GetOrg handles GET /api/organisations/:orgId
func (h *OrgHandler) GetOrg(c *gin.Context) {
	userID := c.GetString("user_id")
	orgID := c.Param("orgId")

	org, err := h.Service.GetOrg(c.Request.Context(), userID, orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Organisation retrieved successfully", org)
}

// AddMember handles POST /api/organisations/:orgId/users
func (h *OrgHandler) AddMember(c *gin.Context) {
	requesterID := c.GetString("user_id")
	orgID := c.Param("orgId")

	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondError(c, http.StatusBadRequest, "Bad Request", "userId field is required in the request body")
		return
	}

	if err := h.Service.AddMember(c.Request.Context(), requesterID, orgID, input.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "User added to organisation successfully", nil)
}

// ListMembers handles GET /api/organisations/:orgId/users
func (h *OrgHandler) ListMembers(c *gin.Context) {
	requesterID := c.GetString("user_id")
	orgID := c.Param("orgId")

	members, err := h.Service.ListMembers(c.Request.Context(), requesterID, orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Members retrieved successfully", gin.H{"members": members})
}
