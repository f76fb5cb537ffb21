package validation

import (
	"errors"
	"strings"
	"testing"

	"vahcare-api/pkg/models"
)

func validApplicationRequest() models.ApplicationRequest {
	return models.ApplicationRequest{
		JobID:        "507f1f77bcf86cd799439011",
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Experience:   "1-3",
		Availability: "immediately",
	}
}

func TestApplicationRequestValid(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	req := validApplicationRequest()
	if err := v.Struct(&req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	// Message is optional.
	req.Message = "Available for interviews any weekday."
	if err := v.Struct(&req); err != nil {
		t.Fatalf("expected valid request with message, got %v", err)
	}
}

func TestApplicationRequestFieldNames(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	req := models.ApplicationRequest{}

	err := v.Struct(&req)
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	fields := make(map[string]string)
	for _, fe := range Translate(err) {
		fields[fe.Field] = fe.Message
	}

	// Reported names must match the wire names, not the Go field names.
	for _, want := range []string{"jobId", "fullName", "email", "experience", "availability"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("expected field error for %q, got %v", want, fields)
		}
	}
	if msg := fields["jobId"]; msg != "jobId is required" {
		t.Errorf("unexpected required message %q", msg)
	}
}

func TestObjectIDTag(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	bad := []string{
		"507f1f77bcf86cd79943901",   // 23 chars
		"507f1f77bcf86cd7994390111", // 25 chars
		"507f1f77bcf86cd79943901g",  // non-hex
		"not-an-id",
	}
	for _, id := range bad {
		req := validApplicationRequest()
		req.JobID = id
		if err := v.Struct(&req); err == nil {
			t.Errorf("expected %q to fail object_id validation", id)
		}
	}
}

func TestClosedSetMessages(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	req := validApplicationRequest()
	req.Experience = "10-20"
	req.Availability = "someday"

	err := v.Struct(&req)
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	fields := make(map[string]string)
	for _, fe := range Translate(err) {
		fields[fe.Field] = fe.Message
	}

	if msg := fields["experience"]; !strings.Contains(msg, "0-1, 1-3, 3-5, 5+") {
		t.Errorf("expected allowed values in experience message, got %q", msg)
	}
	if msg := fields["availability"]; !strings.Contains(msg, "immediately, 1month, 3months") {
		t.Errorf("expected allowed values in availability message, got %q", msg)
	}
}

func TestContactRequestRules(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	req := models.ContactRequest{
		Name:    "John Smith",
		Email:   "john@example.com",
		Service: "home_care",
		Message: "I would like to know more about your services.",
	}
	if err := v.Struct(&req); err != nil {
		t.Fatalf("expected valid contact request, got %v", err)
	}

	req.Message = "too short"
	err := v.Struct(&req)
	if err == nil {
		t.Fatalf("expected message length error")
	}
	fields := Translate(err)
	if len(fields) != 1 || fields[0].Field != "message" {
		t.Fatalf("expected single message error, got %v", fields)
	}
	if fields[0].Message != "message must be at least 10 characters" {
		t.Fatalf("unexpected min message %q", fields[0].Message)
	}
}

func TestJobRequestRules(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	req := models.JobRequest{
		Title:       "Registered Nurse",
		Location:    "England",
		Specialty:   "Registered Nurse",
		Description: strings.Repeat("Detailed description of the role. ", 3),
		Salary:      "30,000 - 35,000",
	}
	if err := v.Struct(&req); err != nil {
		t.Fatalf("expected valid job request, got %v", err)
	}

	req.Location = "Scotland"
	err := v.Struct(&req)
	if err == nil {
		t.Fatalf("expected location error")
	}
	fields := Translate(err)
	if len(fields) != 1 || !strings.Contains(fields[0].Message, "England, Wales") {
		t.Fatalf("expected closed-set location message, got %v", fields)
	}
}

func TestTranslateNonValidatorError(t *testing.T) {
	t.Parallel()

	fields := Translate(errors.New("bind failed"))
	if len(fields) != 1 || fields[0].Message != "Invalid request" {
		t.Fatalf("expected generic fallback, got %v", fields)
	}
}
