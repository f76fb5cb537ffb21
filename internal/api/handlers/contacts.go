package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/intake"
	"vahcare-api/internal/store"
	"vahcare-api/pkg/models"
)

// SubmitContactHandler handles POST /contact
func SubmitContactHandler(svc *intake.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ContactRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		result, err := svc.SubmitContact(c.Request().Context(), req)
		if err != nil {
			return intakeError(c, err)
		}

		return c.JSON(http.StatusCreated, models.SuccessResponse(result))
	}
}

// ListContactsHandler handles GET /contacts (admin) with an optional
// status filter.
func ListContactsHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, limit := parsePagination(c)

		query := store.ContactQuery{
			Status: c.QueryParam("status"),
			Page:   page,
			Limit:  limit,
		}

		ctx := c.Request().Context()
		contacts, err := st.ListContacts(ctx, query)
		if err != nil {
			return storeFailure(c, "list contacts", err)
		}

		total, err := st.CountContacts(ctx, query)
		if err != nil {
			return storeFailure(c, "count contacts", err)
		}

		return c.JSON(http.StatusOK, models.ListResponse{
			Success: true,
			Count:   len(contacts),
			Total:   total,
			Page:    page,
			Pages:   pages(total, limit),
			Data:    contacts,
		})
	}
}

// GetContactHandler handles GET /contacts/:id (admin)
func GetContactHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		contact, err := st.GetContact(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Contact not found"))
			}
			return storeFailure(c, "get contact", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(contact))
	}
}

// UpdateContactStatusHandler handles PUT /contacts/:id (admin)
func UpdateContactStatusHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ContactStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
		}

		if !models.IsValidValue(models.ContactStatuses, req.Status) {
			return c.JSON(http.StatusBadRequest, models.FieldErrorResponse([]models.FieldError{{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(models.ContactStatuses, ", "),
			}}))
		}

		ctx := c.Request().Context()
		id := c.Param("id")

		if err := st.UpdateContactStatus(ctx, id, req.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse("Contact not found"))
			}
			return storeFailure(c, "update contact status", err)
		}

		contact, err := st.GetContact(ctx, id)
		if err != nil {
			return storeFailure(c, "get contact", err)
		}

		return c.JSON(http.StatusOK, models.SuccessResponse(contact))
	}
}
