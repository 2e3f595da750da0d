package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"consent-backend/controllers"
	"consent-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		// The config endpoint is embedded on arbitrary customer sites, so
		// the default is open.
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires middleware, the public banner endpoints and the
// JWT-guarded admin API.
func SetupRouter(
	pubc *controllers.PublicController,
	authc *controllers.AuthController,
	projc *controllers.ProjectController,
	cookiec *controllers.CookieController,
	logc *controllers.ConsentLogController,
	analyticsc *controllers.AnalyticsController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(100, time.Minute))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The embeddable banner script.
	r.Static("/banner", "./web")

	api := r.Group("/api")
	{
		// Public endpoints used by the banner script. No auth.
		api.GET("/config", pubc.GetConfig)
		api.POST("/consent", pubc.CreateConsent)

		api.POST("/auth/login", authc.Login)

		// Admin API.
		admin := api.Group("/projects", middleware.RequireAuth(jwtSecret))
		{
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
		}
	}

	return r
}
