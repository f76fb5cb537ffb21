package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/logging"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
	"vahcare-api/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles liveness checks
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service's collaborators are
// reachable: the database and the file store. Mail transport is not
// probed; a dead mail server degrades notifications, not intake.
func ReadinessHandler(st *store.Store, files uploads.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()

		checks := map[string]string{"api": "ok"}
		status := http.StatusOK
		state := "ready"

		if err := st.Ping(ctx); err != nil {
			logger.Error("Readiness check: database unreachable", map[string]interface{}{
				"error": err.Error(),
			})
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
			state = "degraded"
		} else {
			checks["database"] = "ok"
		}

		if files.Healthy(ctx) {
			checks["storage"] = "ok"
		} else {
			checks["storage"] = "unavailable"
			status = http.StatusServiceUnavailable
			state = "degraded"
		}

		return c.JSON(status, models.HealthResponse{
			Status:    state,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}
