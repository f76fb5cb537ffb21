package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/intake"
	"vahcare-api/internal/logging"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
	"vahcare-api/pkg/models"
)

// ApplyHandler handles POST /jobs/apply: multipart form fields plus the
// CV file part named "cv". The intake service owns ordering and error
// classification; the handler only shuttles bytes.
func ApplyHandler(svc *intake.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApplicationRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		file, err := readUpload(c, "cv")
		if err != nil {
			logging.GetGlobalLogger().Warn("Failed to read CV upload", map[string]interface{}{
				"request_id": c.Get("request_id"),
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("File upload error."))
		}

		result, err := svc.SubmitApplication(c.Request().Context(), req, file)
		if err != nil {
			return intakeError(c, err)
		}

		return c.JSON(http.StatusCreated, models.SuccessResponse(result))
	}
}

// ListApplicationsHandler handles GET /applications (admin) with an
// optional jobId filter.
func ListApplicationsHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, limit := parsePagination(c)

		query := store.ApplicationQuery{
			JobID: c.QueryParam("jobId"),
			Page:  page,
			Limit: limit,
		}

		ctx := c.Request().Context()
		apps, err := st.ListApplications(ctx, query)
		if err != nil {
			return storeFailure(c, "list applications", err)
		}

		total, err := st.CountApplications(ctx, query)
		if err != nil {
			return storeFailure(c, "count applications", err)
		}

		return c.JSON(http.StatusOK, models.ListResponse{
			Success: true,
			Count:   len(apps),
			Total:   total,
			Page:    page,
			Pages:   pages(total, limit),
			Data:    apps,
		})
	}
}

// GetApplicationHandler handles GET /applications/:id (admin)
func GetApplicationHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		app, err := st.GetApplication(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Application not found"))
			}
			return storeFailure(c, "get application", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(app))
	}
}

// UpdateApplicationStatusHandler handles PUT /applications/:id (admin).
// The transition triggers a best-effort status email to the applicant.
func UpdateApplicationStatusHandler(svc *intake.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApplicationStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		app, err := svc.UpdateApplicationStatus(c.Request().Context(), c.Param("id"), req.Status)
		if err != nil {
			return intakeError(c, err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(app))
	}
}

// ApplicationCVHandler handles GET /applications/:id/cv (admin): returns
// a time-limited URL for the stored CV.
func ApplicationCVHandler(st *store.Store, files uploads.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		app, err := st.GetApplication(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Application not found"))
			}
			return storeFailure(c, "get application", err)
		}

		url, err := files.SignedURL(app.CVPath, time.Hour)
		if err != nil {
			logging.GetGlobalLogger().Error("Failed to sign CV URL", map[string]interface{}{
				"application_id": app.ID,
				"cv_path":        app.CVPath,
				"error":          err.Error(),
			})
			return c.JSON(http.StatusServiceUnavailable,
				models.ErrorResponse("File storage is currently unavailable. Please try again later."))
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(map[string]interface{}{
			"url": url,
		}))
	}
}

// DeleteApplicationHandler handles DELETE /applications/:id (admin).
// The stored CV is removed best-effort after the record is gone.
func DeleteApplicationHandler(st *store.Store, files uploads.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		app, err := st.GetApplication(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Application not found"))
			}
			return storeFailure(c, "get application", err)
		}

		if err := st.DeleteApplication(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Application not found"))
			}
			return storeFailure(c, "delete application", err)
		}

		if app.CVPath != "" {
			if err := files.Delete(ctx, app.CVPath); err != nil {
				logging.GetGlobalLogger().Warn("Failed to remove CV for deleted application", map[string]interface{}{
					"application_id": id,
					"cv_path":        app.CVPath,
					"error":          err.Error(),
				})
			}
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(map[string]interface{}{}))
	}
}

// readUpload pulls the named multipart file part into memory. A missing
// part is not an error; it returns nil so the service can report the
// absence in pipeline order.
func readUpload(c echo.Context, field string) (*uploads.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// No multipart body at all reads the same as a missing part.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &uploads.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}
