package intake

import (
	"vahcare-api/pkg/models"
)

// Kind classifies a rejected submission so the HTTP layer can map it to
// the right status code and user-facing message.
type Kind int

const (
	KindValidation Kind = iota
	KindFileRequired
	KindFileType
	KindFileSize
	KindNotFound
	KindUnavailable
	KindInternal
)

// Error is a structured rejection of a submission. A submission that
// reaches notification can no longer produce an Error; notification
// failures are logged and swallowed.
type Error struct {
	Kind    Kind
	Message string
	Fields  []models.FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(fields []models.FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func rejection(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
