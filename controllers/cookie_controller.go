package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"consent-backend/models"
	"consent-backend/services"
	"consent-backend/utils"
)

// CookieController manages a project's cookie categories and services.
type CookieController struct {
	Catalog *services.CookieCatalogService
}

func NewCookieController(catalog *services.CookieCatalogService) *CookieController {
	return &CookieController{Catalog: catalog}
}

// GET /api/projects/:id/cookies
func (cc *CookieController) ListServices(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := cc.Catalog.ListServices(projectID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load cookie services")
		return
	}
	c.JSON(http.StatusOK, out)
}

type cookieServicePayload struct {
	CategoryID       uint   `json:"category_id" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Provider         string `json:"provider"`
	CookieNames      string `json:"cookie_names"`
	ScriptCode       string `json:"script_code"`
	PrivacyPolicyURL string `json:"privacy_policy_url"`
	RetentionPeriod  string `json:"retention_period"`
	Purpose          string `json:"purpose"`
}

// POST /api/projects/:id/cookies
func (cc *CookieController) CreateService(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cookieServicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cookie service payload: "+err.Error())
		return
	}

	svc := models.CookieService{
		ProjectID:        projectID,
		CategoryID:       payload.CategoryID,
		Name:             payload.Name,
		Description:      payload.Description,
		Provider:         payload.Provider,
		CookieNames:      payload.CookieNames,
		ScriptCode:       payload.ScriptCode,
		PrivacyPolicyURL: payload.PrivacyPolicyURL,
		RetentionPeriod:  payload.RetentionPeriod,
		Purpose:          payload.Purpose,
	}
	if err := cc.Catalog.CreateService(&svc); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create cookie service")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// PUT /api/projects/:id/cookies/:cookieId
func (cc *CookieController) UpdateService(c *gin.Context) {
	cookieID, ok := parseIDParam(c, "cookieId")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload")
		return
	}
	updated, err := cc.Catalog.UpdateService(cookieID, fields)
	if err != nil {
		if errors.Is(err, services.ErrCookieServiceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Cookie service not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update cookie service")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/projects/:id/cookies/:cookieId
func (cc *CookieController) DeleteService(c *gin.Context) {
	cookieID, ok := parseIDParam(c, "cookieId")
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteService(cookieID); err != nil {
		if errors.Is(err, services.ErrCookieServiceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Cookie service not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete cookie service")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/projects/:id/categories
func (cc *CookieController) ListCategories(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := cc.Catalog.ListCategories(projectID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, out)
}

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	SortOrder   int    `json:"sort_order"`
}

// POST /api/projects/:id/categories
func (cc *CookieController) CreateCategory(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid category payload: "+err.Error())
		return
	}

	cat := models.CookieCategory{
		ProjectID:   projectID,
		Name:        payload.Name,
		Description: payload.Description,
		Required:    payload.Required,
		SortOrder:   payload.SortOrder,
	}
	if err := cc.Catalog.CreateCategory(&cat); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			utils.JSONError(c, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrCategoryExists):
			utils.JSONError(c, http.StatusConflict, "Category already exists")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create category")
		}
		return
	}
	c.JSON(http.StatusCreated, cat)
}
