package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/intake"
	"vahcare-api/pkg/models"
)

// parsePagination extracts page/limit query parameters with the same
// bounds the store applies.
func parsePagination(c echo.Context) (page, limit int) {
	page = 1
	limit = 20

	if p := c.QueryParam("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			if v > 100 {
				v = 100
			}
			limit = v
		}
	}
	return page, limit
}

// pages computes the page count for a listing response.
func pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	p := int(total) / limit
	if int(total)%limit != 0 {
		p++
	}
	return p
}

// intakeError maps a pipeline rejection onto its HTTP status and body.
func intakeError(c echo.Context, err error) error {
	var rejection *intake.Error
	if !errors.As(err, &rejection) {
		return c.JSON(http.StatusInternalServerError,
			models.ErrorResponse("Something went wrong. Please try again later."))
	}

	switch rejection.Kind {
	case intake.KindValidation:
		if len(rejection.Fields) > 0 {
			return c.JSON(http.StatusBadRequest, models.FieldErrorResponse(rejection.Fields))
		}
		return c.JSON(http.StatusBadRequest, models.ErrorResponse(rejection.Message))
	case intake.KindFileRequired, intake.KindFileType, intake.KindFileSize:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse(rejection.Message))
	case intake.KindNotFound:
		return c.JSON(http.StatusNotFound, models.ErrorResponse(rejection.Message))
	case intake.KindUnavailable:
		return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(rejection.Message))
	default:
		return c.JSON(http.StatusInternalServerError,
			models.ErrorResponse("Something went wrong. Please try again later."))
	}
}
