package routes

import (
	"net/http"

	"udid-retriever/internal/config"
	"udid-retriever/internal/database"
	"udid-retriever/internal/delivery/http/handler"
	"udid-retriever/internal/infrastructure/database/postgres"
	"udid-retriever/internal/logger"
	"udid-retriever/internal/middleware"
	deviceuc "udid-retriever/internal/usecase/device"
	"udid-retriever/internal/usecase/enrollment"
	"udid-retriever/internal/usecase/profile"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *database.Database, notifier enrollment.Notifier) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	deviceRepository := postgres.NewDeviceRepository(db)

	profileService := profile.NewService(cfg.Profile)
	profileHandler := handler.NewProfileHandler(profileService)

	enrollmentService := enrollment.NewService(deviceRepository, notifier)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	deviceService := deviceuc.NewService(deviceRepository)
	deviceHandler := handler.NewDeviceHandler(deviceService)

	// Enrollment protocol endpoints carry a fixed CORS policy on every
	// response, error paths included.
	issueCORS := middleware.EnrollmentCORS("GET, OPTIONS")
	router.GET(handler.ProfilePath, issueCORS, profileHandler.IssueProfile)
	router.OPTIONS(handler.ProfilePath, issueCORS)

	callbackCORS := middleware.EnrollmentCORS("POST, OPTIONS")
	router.POST(handler.CallbackPath, callbackCORS, enrollmentHandler.HandleCallback)
	router.OPTIONS(handler.CallbackPath, callbackCORS)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORSMiddleware(&cfg.CORS))
	{
		deviceHandler.RegisterRoutes(v1)
	}

	logger.Info("All routes initialized")
	return router
}
