package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
	"consent-backend/utils"
)

// DefaultExpiryMonths applies when a project has no (or a zero) expiry
// configured.
const DefaultExpiryMonths = 12

// ConsentService persists visitor consent decisions. Records are append-only;
// there is no update or delete path.
type ConsentService struct {
	DB *gorm.DB
}

func NewConsentService(db *gorm.DB) *ConsentService {
	if db == nil {
		db = config.DB
	}
	return &ConsentService{DB: db}
}

// RecordConsentInput is the validated consent payload from the banner.
type RecordConsentInput struct {
	ProjectID             uint
	AcceptedServices      []uint
	AcceptedCategoryNames []string
	IsAcceptAll           bool
}

// Record stores one consent decision for a project and returns the computed
// expiry. The raw client IP is pseudonymized before it touches the database.
func (s *ConsentService) Record(in RecordConsentInput, rawClientIP, userAgent string) (time.Time, error) {
	var project models.Project
	if err := s.DB.Select("id", "expiry_months").First(&project, in.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrProjectNotFound
		}
		return time.Time{}, err
	}

	now := time.Now().UTC()
	expiresAt := consentExpiry(now, project.ExpiryMonths)

	services := in.AcceptedServices
	if services == nil {
		services = []uint{}
	}
	categories := in.AcceptedCategoryNames
	if categories == nil {
		categories = []string{}
	}

	blob, err := json.Marshal(models.ConsentPayload{
		AcceptedServices:      services,
		AcceptedCategoryNames: categories,
		IsAcceptAll:           in.IsAcceptAll,
		UserAgent:             userAgent,
	})
	if err != nil {
		return time.Time{}, err
	}

	record := models.ConsentLog{
		ProjectID:       in.ProjectID,
		Consents:        datatypes.JSON(blob),
		IPPseudonymized: utils.PseudonymizeIP(rawClientIP),
		ExpiresAt:       expiresAt,
		CreatedAt:       now,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return time.Time{}, err
	}
	return expiresAt, nil
}

// consentExpiry adds the configured number of calendar months, not a fixed
// duration: 2024-01-31 + 12 months is 2025-01-31.
func consentExpiry(createdAt time.Time, expiryMonths int) time.Time {
	if expiryMonths <= 0 {
		expiryMonths = DefaultExpiryMonths
	}
	return createdAt.AddDate(0, expiryMonths, 0)
}
