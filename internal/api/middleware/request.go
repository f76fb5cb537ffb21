package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/config"
	"vahcare-api/pkg/models"
	"vahcare-api/pkg/utils"
)

// jsonBodyLimit bounds non-multipart request bodies. Multipart uploads
// get the configured file ceiling plus headroom for the form fields.
const jsonBodyLimit = 1024 * 1024

// RequestValidation middleware tags every request with an ID and rejects
// oversized bodies before any handler runs.
func RequestValidation(cfg *config.Config) echo.MiddlewareFunc {
	multipartLimit := cfg.Storage.MaxFileSize + jsonBodyLimit

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost || c.Request().Method == http.MethodPut {
				limit := int64(jsonBodyLimit)
				if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
					limit = multipartLimit
				}

				if c.Request().ContentLength > limit {
					return c.JSON(http.StatusRequestEntityTooLarge,
						models.ErrorResponse("Request body too large"))
				}
			}

			return next(c)
		}
	}
}
