package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"consent-backend/services"
	"consent-backend/utils"
)

type ConsentLogController struct {
	Logs *services.ConsentLogService
}

func NewConsentLogController(logs *services.ConsentLogService) *ConsentLogController {
	return &ConsentLogController{Logs: logs}
}

// GET /api/projects/:id/consent-logs?page=&limit=
func (clc *ConsentLogController) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := clc.Logs.ListByProject(projectID, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load consent logs")
		return
	}
	c.JSON(http.StatusOK, result)
}
