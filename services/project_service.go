package services

import (
	"errors"

	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
)

// ProjectService manages banner projects and their public config projection.
type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	if db == nil {
		db = config.DB
	}
	return &ProjectService{DB: db}
}

// DefaultCategories returns the four categories every new project starts
// with. The first one is the non-deselectable "necessary" category.
func DefaultCategories(projectID uint) []models.CookieCategory {
	return []models.CookieCategory{
		{ProjectID: projectID, Name: "Notwendige Cookies", Description: "Diese Cookies sind für die Grundfunktionen der Website erforderlich und können nicht deaktiviert werden.", Required: true, SortOrder: 1},
		{ProjectID: projectID, Name: "Präferenzen Cookies", Description: "Diese Cookies ermöglichen es der Website, sich an Ihre Einstellungen zu erinnern.", SortOrder: 2},
		{ProjectID: projectID, Name: "Statistik Cookies", Description: "Diese Cookies helfen uns zu verstehen, wie Besucher mit der Website interagieren.", SortOrder: 3},
		{ProjectID: projectID, Name: "Marketing Cookies", Description: "Diese Cookies werden verwendet, um Ihnen relevante Werbung zu zeigen.", SortOrder: 4},
	}
}

func (s *ProjectService) List() ([]models.Project, error) {
	var projects []models.Project
	err := s.DB.Order("created_at desc").Find(&projects).Error
	return projects, err
}

// Create inserts a project and seeds its default categories.
func (s *ProjectService) Create(project *models.Project) error {
	if project.ExpiryMonths <= 0 {
		project.ExpiryMonths = DefaultExpiryMonths
	}
	if err := s.DB.Create(project).Error; err != nil {
		return err
	}
	return s.DB.Create(DefaultCategories(project.ID)).Error
}

// Get returns a project with its categories (by sort order) and services
// (by name).
func (s *ProjectService) Get(id uint) (models.Project, []models.CookieCategory, []models.CookieService, error) {
	var project models.Project
	if err := s.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, nil, nil, ErrProjectNotFound
		}
		return models.Project{}, nil, nil, err
	}

	var categories []models.CookieCategory
	if err := s.DB.Where("project_id = ?", id).Order("sort_order").Find(&categories).Error; err != nil {
		return models.Project{}, nil, nil, err
	}
	var cookieServices []models.CookieService
	if err := s.DB.Where("project_id = ?", id).Order("name").Find(&cookieServices).Error; err != nil {
		return models.Project{}, nil, nil, err
	}
	return project, categories, cookieServices, nil
}

// projectUpdateColumns is the set of columns the admin UI may change.
var projectUpdateColumns = map[string]bool{
	"name": true, "domain": true, "language": true,
	"banner_title": true, "banner_text": true,
	"accept_all_text": true, "accept_selection_text": true, "necessary_only_text": true,
	"about_cookies_text": true, "custom_html": true, "custom_css": true, "custom_js": true,
	"expiry_months": true,
}

// Update applies the allowed subset of fields. GORM bumps updated_at, which
// doubles as the config version that forces banners to re-prompt.
func (s *ProjectService) Update(id uint, fields map[string]interface{}) error {
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if projectUpdateColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	result := s.DB.Model(&models.Project{}).Where("id = ?", id).Updates(filtered)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project with its categories, services and consent logs.
func (s *ProjectService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.CookieService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.CookieCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", id).Delete(&models.ConsentLog{}).Error
	})
}

// SeedDefaultCategories creates the default category set for an existing
// project that has none yet.
func (s *ProjectService) SeedDefaultCategories(projectID uint) error {
	var project models.Project
	if err := s.DB.Select("id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	var count int64
	if err := s.DB.Model(&models.CookieCategory{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoriesExist
	}
	return s.DB.Create(DefaultCategories(projectID)).Error
}

// PublicConfig is the unauthenticated payload the banner script loads.
type PublicConfig struct {
	BannerHTML string                 `json:"banner_html"`
	BannerCSS  string                 `json:"banner_css"`
	Project    models.Project         `json:"project"`
	Categories []models.CookieCategory `json:"categories"`
	Services   []models.CookieService  `json:"services"`
}

// PublicConfig assembles the config for the embed script.
func (s *ProjectService) PublicConfig(id uint) (PublicConfig, error) {
	project, categories, cookieServices, err := s.Get(id)
	if err != nil {
		return PublicConfig{}, err
	}
	return PublicConfig{
		BannerHTML: project.CustomHTML,
		BannerCSS:  project.CustomCSS,
		Project:    project,
		Categories: categories,
		Services:   cookieServices,
	}, nil
}
