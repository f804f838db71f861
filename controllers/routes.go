package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/cache"
	"github.com/naseemhussainn/news-aggregator-api/config"
	"github.com/naseemhussainn/news-aggregator-api/middleware"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, store *cache.Cache) {
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())

	auth := &AuthController{db: db, cfg: cfg}
	articles := &ArticleController{db: db, cfg: cfg, cache: store}
	prefs := &PreferenceController{db: db}

	api.POST("/register", auth.Register)
	api.POST("/login", auth.Login)
	api.POST("/forgot-password", auth.ForgotPassword)
	api.POST("/reset-password", auth.ResetPassword)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(db, cfg.JWTSecret))
	{
		protected.POST("/logout", auth.Logout)

		protected.GET("/articles", articles.Index)
		protected.GET("/articles/:id", articles.Show)
		protected.GET("/feed", articles.Feed)

		protected.GET("/preferences", prefs.Index)
		protected.POST("/preferences/sources", prefs.SetSources)
		protected.POST("/preferences/categories", prefs.SetCategories)
		protected.POST("/preferences/authors", prefs.SetAuthors)
	}
}
