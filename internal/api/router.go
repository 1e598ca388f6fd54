package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(cacheControlMiddleware())

	// Handlers
	contentHandler := NewContentHandler(services, log)
	submissionHandler := NewSubmissionHandler(services, log)
	searchHandler := NewSearchHandler(services, log)
	feedHandler := NewFeedHandler(services, log)
	metadataHandler := NewMetadataHandler(services, log)

	admin := adminRequired(cfg)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		content := api.Group("/content")
		{
			content.GET("", contentHandler.GetAll)
			content.GET("/:section", contentHandler.GetSection)
			content.POST("/:section", admin, contentHandler.Create)
			content.PUT("/:section/:id", admin, contentHandler.Update)
			content.DELETE("/:section/:id", admin, contentHandler.Delete)
		}

		submissions := api.Group("/submissions")
		{
			submissions.GET("", admin, submissionHandler.List)
			submissions.POST("", submissionHandler.Create)
			submissions.POST("/:id/approve", admin, submissionHandler.Approve)
			submissions.POST("/:id/dismiss", admin, submissionHandler.Dismiss)
		}

		api.GET("/search", searchHandler.Search)

		api.GET("/rss", feedHandler.Feed)
		api.GET("/rss/:section", feedHandler.Feed)

		api.GET("/metadata", metadataHandler.Fetch)

		api.GET("/me", meHandler(cfg))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "content-api",
	})
}

// meHandler echoes the session state for the admin UI. Full OAuth/session
// wiring lives in the hosting layer; here a valid admin token counts as an
// authenticated admin.
func meHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasValidAdminToken(c, cfg) {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}

		email := ""
		if len(cfg.Auth.AdminEmails) > 0 {
			email = cfg.Auth.AdminEmails[0]
		}
		c.JSON(http.StatusOK, gin.H{
			"authenticated": true,
			"user": gin.H{
				"email":   email,
				"isAdmin": true,
			},
		})
	}
}
