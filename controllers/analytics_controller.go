package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"consent-backend/services"
	"consent-backend/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// GET /api/projects/:id/analytics
func (ac *AnalyticsController) Get(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	analytics, err := ac.Analytics.ForProject(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}
