package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/api/validation"
	"vahcare-api/internal/logging"
	"vahcare-api/internal/store"
	"vahcare-api/pkg/models"
)

var jobValidator = validation.NewValidator()

// ListJobsHandler handles GET /jobs with location/specialty filters and
// pagination.
func ListJobsHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, limit := parsePagination(c)

		query := store.JobQuery{
			Location:  c.QueryParam("location"),
			Specialty: c.QueryParam("specialty"),
			Page:      page,
			Limit:     limit,
		}

		ctx := c.Request().Context()
		jobs, err := st.ListJobs(ctx, query)
		if err != nil {
			return storeFailure(c, "list jobs", err)
		}

		total, err := st.CountJobs(ctx, query)
		if err != nil {
			return storeFailure(c, "count jobs", err)
		}

		return c.JSON(http.StatusOK, models.ListResponse{
			Success: true,
			Count:   len(jobs),
			Total:   total,
			Page:    page,
			Pages:   pages(total, limit),
			Data:    jobs,
		})
	}
}

// GetJobHandler handles GET /jobs/:id
func GetJobHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := st.GetJob(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Job not found"))
			}
			return storeFailure(c, "get job", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(job))
	}
}

// CreateJobHandler handles POST /jobs (admin)
func CreateJobHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.JobRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		if err := jobValidator.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.FieldErrorResponse(validation.Translate(err)))
		}

		job := &models.Job{
			Title:       req.Title,
			Location:    req.Location,
			Specialty:   req.Specialty,
			Description: req.Description,
			Salary:      req.Salary,
		}

		if err := st.CreateJob(c.Request().Context(), job); err != nil {
			return storeFailure(c, "create job", err)
		}

		return c.JSON(http.StatusCreated, models.SuccessResponse(job))
	}
}

// UpdateJobHandler handles PUT /jobs/:id (admin)
func UpdateJobHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.JobRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		if err := jobValidator.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.FieldErrorResponse(validation.Translate(err)))
		}

		id := c.Param("id")
		job := &models.Job{
			Title:       req.Title,
			Location:    req.Location,
			Specialty:   req.Specialty,
			Description: req.Description,
			Salary:      req.Salary,
		}

		ctx := c.Request().Context()
		if err := st.UpdateJob(ctx, id, job); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Job not found"))
			}
			return storeFailure(c, "update job", err)
		}

		updated, err := st.GetJob(ctx, id)
		if err != nil {
			return storeFailure(c, "get job", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(updated))
	}
}

// DeleteJobHandler handles DELETE /jobs/:id (admin)
func DeleteJobHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := st.DeleteJob(c.Request().Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Job not found"))
			}
			return storeFailure(c, "delete job", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(map[string]interface{}{}))
	}
}

// storeFailure logs a persistence fault and returns the generic 503. The
// underlying error stays in the logs, never in the response body.
func storeFailure(c echo.Context, op string, err error) error {
	logging.GetGlobalLogger().Error("Store operation failed", map[string]interface{}{
		"operation":  op,
		"request_id": c.Get("request_id"),
		"error":      err.Error(),
	})
	return c.JSON(http.StatusServiceUnavailable,
		models.ErrorResponse("Service temporarily unavailable. Please try again later."))
}
