package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ConsentPayload is the JSON blob stored in ConsentLog.Consents. Service ids
// and category names are kept denormalized so a log row stays meaningful
// even after the project's catalog changes.
type ConsentPayload struct {
	AcceptedServices      []uint   `json:"accepted_services"`
	AcceptedCategoryNames []string `json:"accepted_category_names"`
	IsAcceptAll           bool     `json:"is_accept_all"`
	UserAgent             string   `json:"user_agent"`
}

// ConsentLog is one visitor decision. Rows are append-only: a later visit
// inserts a new row, existing rows are never updated or deleted.
type ConsentLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProjectID       uint           `gorm:"index" json:"project_id"`
	Consents        datatypes.JSON `gorm:"column:consents" json:"consents"`
	IPPseudonymized string         `gorm:"size:64;column:ip_pseudonymized" json:"ip_pseudonymized"`
	ExpiresAt       time.Time      `json:"expires_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Payload decodes the stored consents blob.
func (l *ConsentLog) Payload() (ConsentPayload, error) {
	var p ConsentPayload
	err := json.Unmarshal(l.Consents, &p)
	return p, err
}
