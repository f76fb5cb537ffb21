package models

// ApplicationRequest carries the multipart form fields of a job
// application submission. The CV file itself travels alongside as a
// multipart file part named "cv".
type ApplicationRequest struct {
	JobID        string `form:"jobId" validate:"required,object_id"`
	FullName     string `form:"fullName" validate:"required,min=2,max=100"`
	Email        string `form:"email" validate:"required,email"`
	Experience   string `form:"experience" validate:"required,experience_bracket"`
	Availability string `form:"availability" validate:"required,availability"`
	Message      string `form:"message" validate:"omitempty,max=1000"`
}

// ContactRequest carries a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Service string `json:"service" validate:"required,contact_service"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// JobRequest carries the admin payload for creating or updating a posting
type JobRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Location    string `json:"location" validate:"required,job_location"`
	Specialty   string `json:"specialty" validate:"required,job_specialty"`
	Description string `json:"description" validate:"required,min=50,max=2000"`
	Salary      string `json:"salary" validate:"required"`
}

// ContactStatusRequest carries an admin contact status transition
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,contact_status"`
}

// ApplicationStatusRequest carries an admin application status transition
type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}
