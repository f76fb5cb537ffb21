package models

import "time"

// Contact represents a contact-form submission
type Contact struct {
	ID          string    `gorm:"primaryKey;size:24" json:"id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Email       string    `gorm:"not null" json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Service     string    `gorm:"not null" json:"service"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Status      string    `gorm:"not null;default:new;index" json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}
