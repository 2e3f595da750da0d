package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"consent-backend/config"
	"consent-backend/models"
)

// AnalyticsService aggregates consent records for the admin dashboard. The
// consent blobs are decoded in Go instead of relying on MySQL JSON functions,
// so the JSON schema lives in exactly one place (models.ConsentPayload).
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	if db == nil {
		db = config.DB
	}
	return &AnalyticsService{DB: db}
}

type ConsentTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type CategoryStat struct {
	CategoryName   string  `json:"category_name"`
	AcceptedCount  int64   `json:"accepted_count"`
	TotalConsents  int64   `json:"total_consents"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

type DailyTrend struct {
	Date           string `json:"date"`
	TotalConsents  int64  `json:"total_consents"`
	AcceptAllCount int64  `json:"accept_all_count"`
	SelectiveCount int64  `json:"selective_count"`
}

type AnalyticsSummary struct {
	AcceptAllRate int64 `json:"acceptAllRate"`
	SelectiveRate int64 `json:"selectiveRate"`
}

type ProjectAnalytics struct {
	TotalConsents int64              `json:"totalConsents"`
	ConsentTypes  []ConsentTypeCount `json:"consentTypes"`
	CategoryStats []CategoryStat     `json:"categoryStats"`
	DailyTrends   []DailyTrend       `json:"dailyTrends"`
	Summary       AnalyticsSummary   `json:"summary"`
}

// ForProject computes totals, accept-all vs selective split, per-category
// acceptance rates and a 30-day daily trend for one project.
func (s *AnalyticsService) ForProject(projectID uint) (ProjectAnalytics, error) {
	var project models.Project
	if err := s.DB.Select("id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectAnalytics{}, ErrProjectNotFound
		}
		return ProjectAnalytics{}, err
	}

	var categories []models.CookieCategory
	if err := s.DB.Where("project_id = ?", projectID).Order("sort_order").Find(&categories).Error; err != nil {
		return ProjectAnalytics{}, err
	}

	var logs []models.ConsentLog
	if err := s.DB.Where("project_id = ?", projectID).Find(&logs).Error; err != nil {
		return ProjectAnalytics{}, err
	}

	out := ProjectAnalytics{
		TotalConsents: int64(len(logs)),
		ConsentTypes:  []ConsentTypeCount{},
		DailyTrends:   []DailyTrend{},
	}

	acceptedPerCategory := make(map[string]int64)
	trendStart := time.Now().UTC().AddDate(0, 0, -30)
	trends := make(map[string]*DailyTrend)
	var acceptAll, selective int64

	for i := range logs {
		payload, err := logs[i].Payload()
		if err != nil {
			// Skip rows with an undecodable blob rather than failing the
			// whole dashboard.
			continue
		}
		if payload.IsAcceptAll {
			acceptAll++
		} else {
			selective++
		}
		for _, name := range payload.AcceptedCategoryNames {
			acceptedPerCategory[name]++
		}
		if logs[i].CreatedAt.After(trendStart) {
			day := logs[i].CreatedAt.UTC().Format("2006-01-02")
			trend, ok := trends[day]
			if !ok {
				trend = &DailyTrend{Date: day}
				trends[day] = trend
			}
			trend.TotalConsents++
			if payload.IsAcceptAll {
				trend.AcceptAllCount++
			} else {
				trend.SelectiveCount++
			}
		}
	}

	if acceptAll > 0 {
		out.ConsentTypes = append(out.ConsentTypes, ConsentTypeCount{Type: "accept_all", Count: acceptAll})
	}
	if selective > 0 {
		out.ConsentTypes = append(out.ConsentTypes, ConsentTypeCount{Type: "selective", Count: selective})
	}
	out.Summary = AnalyticsSummary{AcceptAllRate: acceptAll, SelectiveRate: selective}

	out.CategoryStats = make([]CategoryStat, 0, len(categories))
	for _, cat := range categories {
		stat := CategoryStat{
			CategoryName:  cat.Name,
			AcceptedCount: acceptedPerCategory[cat.Name],
			TotalConsents: out.TotalConsents,
		}
		if out.TotalConsents > 0 {
			stat.AcceptanceRate = math.Round(float64(stat.AcceptedCount)/float64(out.TotalConsents)*10000) / 100
		}
		out.CategoryStats = append(out.CategoryStats, stat)
	}

	for _, trend := range trends {
		out.DailyTrends = append(out.DailyTrends, *trend)
	}
	sort.Slice(out.DailyTrends, func(i, j int) bool { return out.DailyTrends[i].Date > out.DailyTrends[j].Date })

	return out, nil
}
