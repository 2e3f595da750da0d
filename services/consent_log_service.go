package services

import (
	"errors"

	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
)

// ConsentLogService exposes the stored consent records to the admin UI.
// Read-only: records are appended by ConsentService and never touched again.
type ConsentLogService struct {
	DB *gorm.DB
}

func NewConsentLogService(db *gorm.DB) *ConsentLogService {
	if db == nil {
		db = config.DB
	}
	return &ConsentLogService{DB: db}
}

type ConsentLogPage struct {
	Logs  []models.ConsentLog `json:"logs"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ListByProject returns one page of a project's consent records, newest
// first.
func (s *ConsentLogService) ListByProject(projectID uint, page, limit int) (ConsentLogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var project models.Project
	if err := s.DB.Select("id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConsentLogPage{}, ErrProjectNotFound
		}
		return ConsentLogPage{}, err
	}

	var total int64
	if err := s.DB.Model(&models.ConsentLog{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return ConsentLogPage{}, err
	}

	logs := []models.ConsentLog{}
	err := s.DB.Where("project_id = ?", projectID).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error
	if err != nil {
		return ConsentLogPage{}, err
	}

	return ConsentLogPage{Logs: logs, Total: total, Page: page, Limit: limit}, nil
}
