package router

import (
	"lead-crm-service/internal/adapter/gin/handler"
	"lead-crm-service/internal/adapter/gin/middleware"
	"lead-crm-service/internal/usecase/auth"
	"lead-crm-service/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	leadHandler *handler.LeadHandler,
	tokens *token.Manager,
	users auth.Repository,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		leads := api.Group("/leads", middleware.Auth(tokens, users, log))
		{
			leads.GET("", leadHandler.List)
			leads.POST("", leadHandler.Create)
			leads.GET("/:id", leadHandler.Get)
			leads.PUT("/:id", leadHandler.Update)
			leads.DELETE("/:id", leadHandler.Delete)
		}
	}

	return router
}
