package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"consent-backend/models"
)

func insertConsent(t *testing.T, db *gorm.DB, projectID uint, createdAt time.Time, blob string) {
	t.Helper()
	row := models.ConsentLog{
		ProjectID:       projectID,
		Consents:        datatypes.JSON(blob),
		IPPseudonymized: "203.0.113.XXX",
		ExpiresAt:       createdAt.AddDate(1, 0, 0),
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&row).Error)
}

func TestAnalyticsForProject(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 12)
	require.NoError(t, db.Create(&[]models.CookieCategory{
		{ProjectID: project.ID, Name: "Notwendige Cookies", Required: true, SortOrder: 1},
		{ProjectID: project.ID, Name: "Statistik Cookies", SortOrder: 2},
		{ProjectID: project.ID, Name: "Marketing Cookies", SortOrder: 3},
	}).Error)

	// Pin rows to noon so each lands on an unambiguous calendar day.
	noon := func(daysAgo int) time.Time {
		d := time.Now().UTC().AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	}
	allNames := `["Notwendige Cookies","Statistik Cookies","Marketing Cookies"]`
	insertConsent(t, db, project.ID, noon(2),
		`{"accepted_services":[1,2,3],"accepted_category_names":`+allNames+`,"is_accept_all":true,"user_agent":""}`)
	insertConsent(t, db, project.ID, noon(2).Add(time.Hour),
		`{"accepted_services":[1,2,3],"accepted_category_names":`+allNames+`,"is_accept_all":true,"user_agent":""}`)
	insertConsent(t, db, project.ID, noon(5),
		`{"accepted_services":[1,2],"accepted_category_names":["Notwendige Cookies","Statistik Cookies"],"is_accept_all":false,"user_agent":""}`)
	insertConsent(t, db, project.ID, noon(5).Add(time.Hour),
		`{"accepted_services":[1],"accepted_category_names":["Notwendige Cookies"],"is_accept_all":false,"user_agent":""}`)
	// A corrupt blob must not break the dashboard.
	insertConsent(t, db, project.ID, noon(2).Add(2*time.Hour), `{not json`)

	svc := NewAnalyticsService(db)
	got, err := svc.ForProject(project.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 5, got.TotalConsents)
	assert.Equal(t, []ConsentTypeCount{
		{Type: "accept_all", Count: 2},
		{Type: "selective", Count: 2},
	}, got.ConsentTypes)
	assert.EqualValues(t, 2, got.Summary.AcceptAllRate)
	assert.EqualValues(t, 2, got.Summary.SelectiveRate)

	require.Len(t, got.CategoryStats, 3)
	assert.Equal(t, "Notwendige Cookies", got.CategoryStats[0].CategoryName)
	assert.EqualValues(t, 4, got.CategoryStats[0].AcceptedCount)
	assert.Equal(t, 80.0, got.CategoryStats[0].AcceptanceRate)
	assert.Equal(t, "Statistik Cookies", got.CategoryStats[1].CategoryName)
	assert.EqualValues(t, 3, got.CategoryStats[1].AcceptedCount)
	assert.Equal(t, 60.0, got.CategoryStats[1].AcceptanceRate)
	assert.Equal(t, "Marketing Cookies", got.CategoryStats[2].CategoryName)
	assert.EqualValues(t, 2, got.CategoryStats[2].AcceptedCount)
	assert.Equal(t, 40.0, got.CategoryStats[2].AcceptanceRate)

	// Two decodable days inside the 30-day window, newest first.
	require.Len(t, got.DailyTrends, 2)
	assert.True(t, got.DailyTrends[0].Date > got.DailyTrends[1].Date)
	assert.EqualValues(t, 2, got.DailyTrends[0].TotalConsents)
	assert.EqualValues(t, 2, got.DailyTrends[0].AcceptAllCount)
	assert.EqualValues(t, 2, got.DailyTrends[1].SelectiveCount)
}

func TestAnalyticsEmptyProject(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 12)

	svc := NewAnalyticsService(db)
	got, err := svc.ForProject(project.ID)
	require.NoError(t, err)

	assert.Zero(t, got.TotalConsents)
	assert.Empty(t, got.ConsentTypes)
	assert.Empty(t, got.CategoryStats)
	assert.Empty(t, got.DailyTrends)
	assert.Zero(t, got.Summary.AcceptAllRate)
	assert.Zero(t, got.Summary.SelectiveRate)
}

func TestAnalyticsUnknownProject(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)
	_, err := svc.ForProject(999)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
