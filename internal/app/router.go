package app

import (
	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/middleware"
	"github.com/Sanni11/slapbook/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Everything else is members only.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		// Feed
		authGroup.GET("/posts", c.feed.GetPosts)
		authGroup.POST("/posts", c.feed.CreatePost)
		authGroup.GET("/posts/:id", c.feed.GetPostDetail)
		authGroup.DELETE("/posts/:id", c.feed.DeletePost)
		authGroup.POST("/posts/:id/comments", c.feed.CreateComment)
		authGroup.DELETE("/comments/:id", c.feed.DeleteComment)

		// Activity log
		authGroup.GET("/activities", c.activity.ListMine)
		authGroup.POST("/activities", c.activity.LogActivity)
		authGroup.DELETE("/activities/:id", c.activity.Delete)

		// Derived analytics
		authGroup.GET("/stats/me", c.dashboard.GetMyStats)
		authGroup.GET("/dashboard", c.dashboard.GetBoard)
	}
}
