package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"vahcare-api/internal/api/handlers"
	"vahcare-api/internal/api/middleware"
	"vahcare-api/internal/config"
	"vahcare-api/internal/intake"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, st *store.Store, files uploads.Store, svc *intake.Service) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg))
	e.Use(middleware.RequestValidation(cfg))
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	applyLimiter := middleware.NewLimiter(cfg, "apply", cfg.RateLimit.ApplyMax, cfg.RateLimit.ApplyWindow)
	contactLimiter := middleware.NewLimiter(cfg, "contact", cfg.RateLimit.ContactMax, cfg.RateLimit.ContactWindow)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(st, files))
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobsHandler(st))
			jobs.POST("", handlers.CreateJobHandler(st))
			jobs.POST("/apply", handlers.ApplyHandler(svc),
				middleware.RateLimit(applyLimiter, "Too many applications submitted. Please try again later."))
			jobs.GET("/:id", handlers.GetJobHandler(st))
			jobs.PUT("/:id", handlers.UpdateJobHandler(st))
			jobs.DELETE("/:id", handlers.DeleteJobHandler(st))
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ListApplicationsHandler(st))
			applications.GET("/:id", handlers.GetApplicationHandler(st))
			applications.PUT("/:id", handlers.UpdateApplicationStatusHandler(svc))
			applications.DELETE("/:id", handlers.DeleteApplicationHandler(st, files))
			applications.GET("/:id/cv", handlers.ApplicationCVHandler(st, files))
		}

		v1.POST("/contact", handlers.SubmitContactHandler(svc),
			middleware.RateLimit(contactLimiter, "Too many contact requests. Please try again later."))

		contacts := v1.Group("/contacts")
		{
			contacts.GET("", handlers.ListContactsHandler(st))
			contacts.GET("/:id", handlers.GetContactHandler(st))
			contacts.PUT("/:id", handlers.UpdateContactStatusHandler(st))
		}
	}

	// Stored CVs are served straight from disk when local storage is in
	// use; the s3 backend hands out presigned URLs instead.
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		e.Static("/uploads", cfg.Storage.UploadDir)
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "VAH Care API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
