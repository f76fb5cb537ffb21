package models

import "time"

// APIResponse is the envelope every endpoint returns. Failure responses
// carry either a single human-readable Error or an itemized Errors list,
// never both.
type APIResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListResponse wraps a paginated collection
type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Data    interface{} `json:"data"`
}

// ApplicationResult is the success payload of a job application submission
type ApplicationResult struct {
	ApplicationID string `json:"applicationId"`
	JobTitle      string `json:"jobTitle"`
}

// ContactResult is the success payload of a contact submission
type ContactResult struct {
	ContactID string `json:"contactId"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// SuccessResponse builds a success envelope around data
func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// ErrorResponse builds a failure envelope with a single message
func ErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// FieldErrorResponse builds a failure envelope with itemized field errors
func FieldErrorResponse(errs []FieldError) APIResponse {
	return APIResponse{Success: false, Errors: errs}
}
