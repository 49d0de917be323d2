package router

import (
	"net/http"

	"github.com/ldc-store/internal/cache"
	"github.com/ldc-store/internal/config"
	adminhandlers "github.com/ldc-store/internal/http/handlers/admin"
	publichandlers "github.com/ldc-store/internal/http/handlers/public"
	"github.com/ldc-store/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 构建路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware(&cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminHandler := adminhandlers.New(c)
	publicHandler := publichandlers.New(c)

	api := r.Group("/api/v1")

	// 店面公开接口
	api.GET("/config", publicHandler.GetConfig)
	api.GET("/categories", publicHandler.GetCategories)
	api.GET("/products", publicHandler.GetProducts)
	api.GET("/products/:slug", publicHandler.GetProductBySlug)

	admin := api.Group("/admin")
	{
		loginLimit := adminLoginRule(
			cfg.Security.LoginRateLimit.WindowSeconds,
			cfg.Security.LoginRateLimit.MaxAttempts,
		)
		admin.POST("/login", RateLimitMiddleware(cache.Client(), loginLimit, KeyByIP), adminHandler.AdminLogin)

		authorized := admin.Group("")
		authorized.Use(JWTAuthMiddleware(c.AuthService, c.AdminRepo))
		authorized.Use(AdminRBACMiddleware(c.AuthzService))
		{
			authorized.GET("/profile", adminHandler.GetProfile)
			authorized.PUT("/password", adminHandler.ChangePassword)

			authorized.GET("/categories", adminHandler.GetAdminCategories)
			authorized.POST("/categories", adminHandler.CreateCategory)
			authorized.GET("/categories/:id", adminHandler.GetAdminCategory)
			authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
			authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
			authorized.POST("/categories/:id/toggle", adminHandler.ToggleCategory)

			authorized.GET("/products", adminHandler.GetAdminProducts)
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.GET("/products/:id", adminHandler.GetAdminProduct)
			authorized.PUT("/products/:id", adminHandler.UpdateProduct)
			authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

			authorized.GET("/cards", adminHandler.GetAdminCards)
			authorized.POST("/cards/import", adminHandler.ImportCards)
			authorized.POST("/cards/batch-delete", adminHandler.BatchDeleteCards)
			authorized.POST("/cards/batch-reset", adminHandler.BatchResetCards)
			authorized.POST("/cards/clean-duplicates", adminHandler.CleanDuplicateCards)
			authorized.GET("/cards/export", adminHandler.ExportCards)
			authorized.GET("/cards/stats", adminHandler.GetCardStats)

			authorized.GET("/orders", adminHandler.GetAdminOrders)
			authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
			authorized.POST("/orders/batch-delete", adminHandler.BatchDeleteOrders)

			authorized.GET("/settings", adminHandler.GetSettings)
			authorized.PUT("/settings", adminHandler.UpdateSettings)
		}
	}

	return r
}
