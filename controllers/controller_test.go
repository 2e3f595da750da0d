package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"consent-backend/models"
	"consent-backend/services"
)

// testRouter wires every handler against a fresh in-memory database. The
// admin routes are registered without the auth middleware; the middleware has
// its own tests.
func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	projectService := services.NewProjectService(db)
	pubc := NewPublicController(projectService, services.NewConsentService(db))
	authc := NewAuthController(services.NewAdminService(db, "test-secret"))
	projc := NewProjectController(projectService)
	cookiec := NewCookieController(services.NewCookieCatalogService(db))
	logc := NewConsentLogController(services.NewConsentLogService(db))
	analyticsc := NewAnalyticsController(services.NewAnalyticsService(db))

	r := gin.New()
	api := r.Group("/api")
	api.GET("/config", pubc.GetConfig)
	api.POST("/consent", pubc.CreateConsent)
	api.POST("/auth/login", authc.Login)

	admin := api.Group("/projects")
	admin.GET("", projc.List)
	admin.POST("", projc.Create)
	admin.GET("/:id", projc.Get)
	admin.PUT("/:id", projc.Update)
	admin.DELETE("/:id", projc.Delete)
	admin.POST("/:id/default-categories", projc.CreateDefaultCategories)
	admin.GET("/:id/cookies", cookiec.ListServices)
	admin.POST("/:id/cookies", cookiec.CreateService)
	admin.PUT("/:id/cookies/:cookieId", cookiec.UpdateService)
	admin.DELETE("/:id/cookies/:cookieId", cookiec.DeleteService)
	admin.GET("/:id/categories", cookiec.ListCategories)
	admin.POST("/:id/categories", cookiec.CreateCategory)
	admin.GET("/:id/consent-logs", logc.List)
	admin.GET("/:id/analytics", analyticsc.Get)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createTestProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()
	project := models.Project{
		Name:         "Demo Website",
		Domain:       "demo.example",
		CustomHTML:   "<div>[#TITLE#]</div>",
		ExpiryMonths: 12,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}
