package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"consent-backend/services"
	"consent-backend/utils"
)

// PublicController serves the two unauthenticated endpoints the banner
// script talks to: config fetch and consent submission.
type PublicController struct {
	Projects *services.ProjectService
	Consents *services.ConsentService
}

func NewPublicController(projects *services.ProjectService, consents *services.ConsentService) *PublicController {
	return &PublicController{Projects: projects, Consents: consents}
}

// GET /api/config?id={projectId}
func (pc *PublicController) GetConfig(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, "Project ID required")
		return
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Project ID must be numeric")
		return
	}

	cfg, err := pc.Projects.PublicConfig(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load project config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type consentPayload struct {
	ProjectID             uint     `json:"project_id" binding:"required"`
	AcceptedServices      *[]uint  `json:"accepted_services" binding:"required"`
	AcceptedCategoryNames []string `json:"accepted_category_names"`
	IsAcceptAll           *bool    `json:"is_accept_all" binding:"required"`
}

// POST /api/consent
func (pc *PublicController) CreateConsent(c *gin.Context) {
	var payload consentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid consent payload: "+err.Error())
		return
	}

	expiresAt, err := pc.Consents.Record(services.RecordConsentInput{
		ProjectID:             payload.ProjectID,
		AcceptedServices:      *payload.AcceptedServices,
		AcceptedCategoryNames: payload.AcceptedCategoryNames,
		IsAcceptAll:           *payload.IsAcceptAll,
	}, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save consent")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
