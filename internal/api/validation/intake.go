package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"vahcare-api/pkg/models"
)

// ObjectIDPattern validates the 24-hex record identifiers the API exposes.
var ObjectIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// ValidateObjectID validates that a field is a well-formed record ID.
func ValidateObjectID(fl validator.FieldLevel) bool {
	return ObjectIDPattern.MatchString(fl.Field().String())
}

// NewValidator builds a validator with every closed-set rule registered.
// Field names reported in errors come from the form/json tags so error
// payloads match the wire names clients submitted.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	v.RegisterValidation("object_id", ValidateObjectID)
	v.RegisterValidation("job_location", inSet(models.JobLocations))
	v.RegisterValidation("job_specialty", inSet(models.JobSpecialties))
	v.RegisterValidation("experience_bracket", inSet(models.ExperienceBrackets))
	v.RegisterValidation("availability", inSet(models.AvailabilityOptions))
	v.RegisterValidation("contact_service", inSet(models.ContactServices))
	v.RegisterValidation("application_status", inSet(models.ApplicationStatuses))
	v.RegisterValidation("contact_status", inSet(models.ContactStatuses))

	return v
}

func inSet(set []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return models.IsValidValue(set, fl.Field().String())
	}
}

// closedSets maps custom tags back to their allowed values for error text.
var closedSets = map[string][]string{
	"job_location":       models.JobLocations,
	"job_specialty":      models.JobSpecialties,
	"experience_bracket": models.ExperienceBrackets,
	"availability":       models.AvailabilityOptions,
	"contact_service":    models.ContactServices,
	"application_status": models.ApplicationStatuses,
	"contact_status":     models.ContactStatuses,
}

// Translate converts validator errors into itemized field errors with
// human-readable messages. Unexpected error types collapse into a single
// generic entry.
func Translate(err error) []models.FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldError{{Field: "", Message: "Invalid request"}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if set, ok := closedSets[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(set, ", "))
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email address"
	case "object_id":
		return fmt.Sprintf("%s must be a valid ID", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
