package models

import "time"

// Job represents a published job posting
type Job struct {
	ID          string    `gorm:"primaryKey;size:24" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Location    string    `gorm:"not null;index" json:"location"`
	Specialty   string    `gorm:"not null;index" json:"specialty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Salary      string    `gorm:"not null" json:"salary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Application represents a submitted job application. The CV path is
// captured once at creation and never rewritten; only Status changes
// afterwards, via an admin transition.
type Application struct {
	ID           string    `gorm:"primaryKey;size:24" json:"id"`
	JobID        string    `gorm:"not null;index" json:"job_id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"not null" json:"email"`
	Experience   string    `gorm:"not null" json:"experience"`
	Availability string    `gorm:"not null" json:"availability"`
	CVPath       string    `gorm:"not null" json:"cv_path"`
	Message      string    `gorm:"type:text" json:"message,omitempty"`
	Status       string    `gorm:"not null;default:pending;index" json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
