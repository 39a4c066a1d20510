package http

import (
	"github.com/gin-gonic/gin"
	"github.com/studybuddy-app/studybuddy-backend/internal/delivery/http/handler"
	"github.com/studybuddy-app/studybuddy-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	matchHandler      *handler.MatchHandler
	connectionHandler *handler.ConnectionHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	connectionHandler *handler.ConnectionHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		matchHandler:      matchHandler,
		connectionHandler: connectionHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/otp/request", r.authHandler.RequestCode)
			auth.POST("/otp/verify", r.authHandler.VerifyCode)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.SaveMyProfile)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Matching
			protected.GET("/matches", r.matchHandler.FindPeers)

			// Connection routes
			connections := protected.Group("/connections")
			{
				connections.POST("", r.connectionHandler.Create)
				connections.PATCH("/:id", r.connectionHandler.UpdateStatus)
				connections.GET("", r.connectionHandler.List)
			}
		}
	}

	return router
}
