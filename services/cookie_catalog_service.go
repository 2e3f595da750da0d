package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
)

// CookieCatalogService manages the cookie categories and services of a
// project. The consent core only reads this data.
type CookieCatalogService struct {
	DB *gorm.DB
}

func NewCookieCatalogService(db *gorm.DB) *CookieCatalogService {
	if db == nil {
		db = config.DB
	}
	return &CookieCatalogService{DB: db}
}

func (s *CookieCatalogService) ListServices(projectID uint) ([]models.CookieService, error) {
	var out []models.CookieService
	err := s.DB.Where("project_id = ?", projectID).Order("name").Find(&out).Error
	return out, err
}

// CreateService inserts a cookie service after confirming the project exists.
func (s *CookieCatalogService) CreateService(svc *models.CookieService) error {
	var project models.Project
	if err := s.DB.Select("id").First(&project, svc.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return s.DB.Create(svc).Error
}

// serviceUpdateColumns guards against clients renaming ids or moving a
// service between projects.
var serviceUpdateColumns = map[string]bool{
	"category_id": true, "name": true, "description": true, "provider": true,
	"cookie_names": true, "script_code": true, "privacy_policy_url": true,
	"retention_period": true, "purpose": true,
}

func (s *CookieCatalogService) UpdateService(id uint, fields map[string]interface{}) (models.CookieService, error) {
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if serviceUpdateColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) > 0 {
		result := s.DB.Model(&models.CookieService{}).Where("id = ?", id).Updates(filtered)
		if result.Error != nil {
			return models.CookieService{}, result.Error
		}
		if result.RowsAffected == 0 {
			return models.CookieService{}, ErrCookieServiceNotFound
		}
	}
	var updated models.CookieService
	if err := s.DB.First(&updated, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CookieService{}, ErrCookieServiceNotFound
		}
		return models.CookieService{}, err
	}
	return updated, nil
}

func (s *CookieCatalogService) DeleteService(id uint) error {
	result := s.DB.Delete(&models.CookieService{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCookieServiceNotFound
	}
	return nil
}

func (s *CookieCatalogService) ListCategories(projectID uint) ([]models.CookieCategory, error) {
	var out []models.CookieCategory
	err := s.DB.Where("project_id = ?", projectID).Order("sort_order").Find(&out).Error
	return out, err
}

// CreateCategory inserts a category. Category names are unique per project;
// a duplicate surfaces as ErrCategoryExists.
func (s *CookieCatalogService) CreateCategory(cat *models.CookieCategory) error {
	var project models.Project
	if err := s.DB.Select("id").First(&project, cat.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	if err := s.DB.Create(cat).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrCategoryExists
		}
		return err
	}
	return nil
}

// isDuplicateEntry recognizes MySQL error 1062 (and GORM's portable
// translation of it) for unique-index violations.
func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
