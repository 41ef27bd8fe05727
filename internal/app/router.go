package app

import (
	"youthhub_backend/docs"
	"youthhub_backend/internal/config"
	"youthhub_backend/internal/middleware"
	"youthhub_backend/internal/model"
	"youthhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), learnerRateLimiter(cfg))
	{
		a.registerCourseRoutes(authGroup, c)
		a.registerChallengeRoutes(authGroup, c)
		a.registerAchievementRoutes(authGroup, c)
	}
}

func (a *App) registerCourseRoutes(group *gin.RouterGroup, c *controllers) {
	courses := group.Group("/courses/:courseId")
	{
		courses.POST("/enroll", c.course.Enroll)
		courses.GET("/progress", c.course.GetProgress)
		courses.POST("/modules/:index/complete", c.course.CompleteModule)
		courses.POST("/modules/:index/quiz", c.course.SubmitQuiz)
	}
}

func (a *App) registerChallengeRoutes(group *gin.RouterGroup, c *controllers) {
	challenges := group.Group("/challenges/:challengeId")
	{
		challenges.POST("/join", c.challenge.Join)
		challenges.POST("/submissions", c.challenge.Submit)
		challenges.GET("/status", c.challenge.GetStatus)

		// 教师评定获胜者
		challenges.POST("/winners/:learnerId", middleware.RoleMiddleware(model.Teacher), c.challenge.MarkWinner)
	}
}

func (a *App) registerAchievementRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/achievements", c.achievement.GetUserAchievements)
	group.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)
	group.GET("/badges", c.achievement.ListBadges)
}
