package models

import "time"

// CookieCategory groups cookie services inside a project. Categories with
// Required=true ("necessary") can never be deselected by a visitor.
type CookieCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;uniqueIndex:idx_category_project_name,priority:1" json:"project_id"`
	Name        string    `gorm:"size:150;uniqueIndex:idx_category_project_name,priority:2" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Required    bool      `json:"required"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
