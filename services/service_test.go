package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"consent-backend/models"
)

// testDB opens an in-memory database with the full schema. TranslateError is
// on, matching the production gorm config, so unique-index violations surface
// as gorm.ErrDuplicatedKey on this driver too.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Project{},
		&models.CookieCategory{},
		&models.CookieService{},
		&models.ConsentLog{},
	))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, expiryMonths int) models.Project {
	t.Helper()
	project := models.Project{
		Name:         "Demo Website",
		Domain:       "demo.example",
		Language:     "de",
		ExpiryMonths: expiryMonths,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}
