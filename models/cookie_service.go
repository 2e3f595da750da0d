package models

import "time"

// CookieService is a single third-party integration (analytics tag, pixel,
// embed) whose ScriptCode is only activated after the visitor consented to
// its category.
type CookieService struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"index" json:"project_id"`
	CategoryID       uint      `gorm:"index" json:"category_id"`
	Name             string    `gorm:"size:255" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	Provider         string    `gorm:"size:255" json:"provider"`
	CookieNames      string    `gorm:"size:500" json:"cookie_names"`
	ScriptCode       string    `gorm:"type:text" json:"script_code"`
	PrivacyPolicyURL string    `gorm:"size:500;column:privacy_policy_url" json:"privacy_policy_url"`
	RetentionPeriod  string    `gorm:"size:255" json:"retention_period"`
	Purpose          string    `gorm:"size:500" json:"purpose"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
