package bannerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"consent-backend/consent"
)

// ProjectConfig is the project portion of the public config payload.
type ProjectConfig struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	BannerTitle         string    `json:"banner_title"`
	BannerText          string    `json:"banner_text"`
	AcceptAllText       string    `json:"accept_all_text"`
	AcceptSelectionText string    `json:"accept_selection_text"`
	NecessaryOnlyText   string    `json:"necessary_only_text"`
	AboutCookiesText    string    `json:"about_cookies_text"`
	ExpiryMonths        int       `json:"expiry_months"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Config is the payload of GET /api/config.
type Config struct {
	BannerHTML string             `json:"banner_html"`
	BannerCSS  string             `json:"banner_css"`
	Project    ProjectConfig      `json:"project"`
	Categories []consent.Category `json:"categories"`
	Services   []consent.Service  `json:"services"`
}

// Version is the configuration version token. A stored consent made under a
// different version is stale and the visitor must be re-prompted.
func (c *Config) Version() string {
	return c.Project.UpdatedAt.UTC().Format(time.RFC3339)
}

// ConsentRequest is the body of POST /api/consent.
type ConsentRequest struct {
	ProjectID             uint     `json:"project_id"`
	AcceptedServices      []uint   `json:"accepted_services"`
	AcceptedCategoryNames []string `json:"accepted_category_names"`
	IsAcceptAll           bool     `json:"is_accept_all"`
}

// ConsentResponse is the success body of POST /api/consent.
type ConsentResponse struct {
	Success   bool      `json:"success"`
	ExpiresAt time.Time `json:"expires_at"`
}

type apiError struct {
	Error string `json:"error"`
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func (a *apiClient) fetchConfig(ctx context.Context, projectID uint) (*Config, error) {
	url := fmt.Sprintf("%s/api/config?id=%d", a.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var cfg Config
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (a *apiClient) submitConsent(ctx context.Context, body ConsentRequest) (ConsentResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return ConsentResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/consent", bytes.NewReader(payload))
	if err != nil {
		return ConsentResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return ConsentResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return ConsentResponse{}, statusError(resp)
	}

	var out ConsentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ConsentResponse{}, fmt.Errorf("decode consent response: %w", err)
	}
	return out, nil
}

func statusError(resp *http.Response) error {
	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
