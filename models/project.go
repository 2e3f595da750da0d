package models

import "time"

// Project is one website/tenant using the consent banner. The custom_*
// columns hold the banner template delivered verbatim to the embed script.
type Project struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:255" json:"name"`
	Domain              string    `gorm:"size:255" json:"domain"`
	Language            string    `gorm:"size:10" json:"language"`
	BannerTitle         string    `gorm:"size:255" json:"banner_title"`
	BannerText          string    `gorm:"type:text" json:"banner_text"`
	AcceptAllText       string    `gorm:"size:255" json:"accept_all_text"`
	AcceptSelectionText string    `gorm:"size:255" json:"accept_selection_text"`
	NecessaryOnlyText   string    `gorm:"size:255" json:"necessary_only_text"`
	AboutCookiesText    string    `gorm:"type:text" json:"about_cookies_text"`
	CustomHTML          string    `gorm:"type:text;column:custom_html" json:"custom_html"`
	CustomCSS           string    `gorm:"type:text;column:custom_css" json:"custom_css"`
	CustomJS            string    `gorm:"type:text;column:custom_js" json:"custom_js"`
	ExpiryMonths        int       `gorm:"default:12" json:"expiry_months"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ConfigVersion is the token the banner client stores alongside a consent
// decision. A later UpdatedAt invalidates stored consent and re-prompts.
func (p *Project) ConfigVersion() string {
	return p.UpdatedAt.UTC().Format(time.RFC3339)
}
