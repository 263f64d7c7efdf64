package app

import (
	"taxmaster_backend/docs"
	"taxmaster_backend/internal/config"
	"taxmaster_backend/internal/middleware"
	"taxmaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/user/profile", c.user.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.GET("/user/stats", c.user.GetStats)
		authGroup.GET("/user/achievements", c.user.GetAchievements)

		authGroup.GET("/courses", c.course.ListEnrollments)
		authGroup.GET("/courses/catalog", c.course.GetCatalog)
		authGroup.GET("/courses/export", c.course.ExportProgress)
		authGroup.POST("/courses/enroll", c.course.Enroll)
		authGroup.POST("/courses/:courseId/lessons/:lessonId/complete", c.course.CompleteLesson)

		authGroup.GET("/activities", c.activity.ListActivities)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
	}
}
