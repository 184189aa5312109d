package app

import (
	"gesture_presentation_backend/docs"
	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/internal/middleware"
	"gesture_presentation_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Server-rendered pages. The presentation page attaches the user when a
	// token happens to be present, anonymous otherwise.
	router.GET("/", c.page.Home)
	router.GET("/presentation/", middleware.TryAuthMiddleware(cfg), c.page.Presentation)
	router.GET("/test/", c.page.Test)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// Gesture ingestion is open to unauthenticated clients.
		api.POST("/log-gesture/", middleware.TryAuthMiddleware(cfg), c.gesture.LogGesture)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/gesture-logs/", c.gesture.List)
		authorized.POST("/gesture-logs/", c.gesture.Create)
		authorized.GET("/gesture-logs/session_stats/", c.gesture.SessionStats)
		authorized.GET("/gesture-logs/:id", c.gesture.Get)
		authorized.PUT("/gesture-logs/:id", c.gesture.Update)
		authorized.DELETE("/gesture-logs/:id", c.gesture.Delete)

		authorized.GET("/sessions/", c.session.List)
		authorized.GET("/sessions/:id", c.session.Get)

		authorized.POST("/performance/", c.performance.Record)
		authorized.GET("/performance/", c.performance.List)
	}
}
