package app

import (
	"eduplatform_backend/docs"
	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/middleware"
	"eduplatform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/grade-levels", c.content.GetGradeLevels)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 内容目录
		authGroup.GET("/subjects", c.content.GetSubjects)
		authGroup.GET("/subjects/:subjectId/lessons", c.content.GetLessons)
		authGroup.GET("/lessons/:lessonId", c.content.GetLesson)

		// 学习进度（核心：幂等加分）
		authGroup.POST("/lessons/:lessonId/complete", c.progression.CompleteLesson)
		authGroup.GET("/progress/summary", c.progression.GetProgressSummary)

		// 成就系统
		authGroup.GET("/achievements", c.achievement.GetUserAchievements)
		authGroup.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)
	}
}
