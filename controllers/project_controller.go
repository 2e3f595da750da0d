package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"consent-backend/models"
	"consent-backend/services"
	"consent-backend/utils"
)

type ProjectController struct {
	Projects *services.ProjectService
}

func NewProjectController(projects *services.ProjectService) *ProjectController {
	return &ProjectController{Projects: projects}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// GET /api/projects
func (pc *ProjectController) List(c *gin.Context) {
	projects, err := pc.Projects.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectPayload struct {
	Name                string `json:"name" binding:"required"`
	Domain              string `json:"domain" binding:"required"`
	Language            string `json:"language"`
	BannerTitle         string `json:"banner_title"`
	BannerText          string `json:"banner_text"`
	AcceptAllText       string `json:"accept_all_text"`
	AcceptSelectionText string `json:"accept_selection_text"`
	NecessaryOnlyText   string `json:"necessary_only_text"`
	AboutCookiesText    string `json:"about_cookies_text"`
	CustomHTML          string `json:"custom_html"`
	CustomCSS           string `json:"custom_css"`
	CustomJS            string `json:"custom_js"`
	ExpiryMonths        int    `json:"expiry_months"`
}

// POST /api/projects
func (pc *ProjectController) Create(c *gin.Context) {
	var payload createProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid project payload: "+err.Error())
		return
	}

	project := models.Project{
		Name:                payload.Name,
		Domain:              payload.Domain,
		Language:            payload.Language,
		BannerTitle:         payload.BannerTitle,
		BannerText:          payload.BannerText,
		AcceptAllText:       payload.AcceptAllText,
		AcceptSelectionText: payload.AcceptSelectionText,
		NecessaryOnlyText:   payload.NecessaryOnlyText,
		AboutCookiesText:    payload.AboutCookiesText,
		CustomHTML:          payload.CustomHTML,
		CustomCSS:           payload.CustomCSS,
		CustomJS:            payload.CustomJS,
		ExpiryMonths:        payload.ExpiryMonths,
	}
	if err := pc.Projects.Create(&project); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create project")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": project.ID})
}

// GET /api/projects/:id
func (pc *ProjectController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	project, categories, cookieServices, err := pc.Projects.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load project")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":    project,
		"categories": categories,
		"services":   cookieServices,
	})
}

// PUT /api/projects/:id
func (pc *ProjectController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload")
		return
	}
	if err := pc.Projects.Update(id, fields); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update project")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}

// DELETE /api/projects/:id
func (pc *ProjectController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.Projects.Delete(id); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Project not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/projects/:id/default-categories
func (pc *ProjectController) CreateDefaultCategories(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.Projects.SeedDefaultCategories(id); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			utils.JSONError(c, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrCategoriesExist):
			utils.JSONError(c, http.StatusBadRequest, "Project already has categories")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create default categories")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Default categories created successfully"})
}
