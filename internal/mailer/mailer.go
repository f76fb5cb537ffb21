package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vahcare-api/internal/config"
	"vahcare-api/internal/logging"
)

// Mailer renders notification emails and hands them to the transport.
// Template rendering and delivery are separate failure domains: a missing
// or broken template silently falls back to inline HTML, while delivery
// errors are returned to the caller (who treats them as best-effort).
type Mailer struct {
	sender      Sender
	templateDir string
	adminEmail  string
	logger      logging.Logger
}

// ApplicationAlert carries the structured data of an admin alert about a
// new job application.
type ApplicationAlert struct {
	ApplicationID string
	JobTitle      string
	FullName      string
	Email         string
	Experience    string
	Availability  string
	Message       string
}

// ContactAlert carries the structured data of an admin alert about a new
// contact submission.
type ContactAlert struct {
	ContactID string
	FullName  string
	Email     string
	Phone     string
	Service   string
	Message   string
}

// New creates a Mailer with the given transport. A nil sender falls back
// to the SMTP transport from config.
func New(cfg *config.Config, sender Sender) *Mailer {
	if sender == nil {
		sender = NewSMTPSender(cfg)
	}
	return &Mailer{
		sender:      sender,
		templateDir: cfg.SMTP.TemplateDir,
		adminEmail:  cfg.SMTP.AdminEmail,
		logger:      logging.GetGlobalLogger(),
	}
}

// SendApplicationConfirmation emails the applicant that their submission
// was received.
func (m *Mailer) SendApplicationConfirmation(ctx context.Context, to, name, jobTitle, applicationID string) error {
	html, err := renderTemplate(m.templateDir, "application_confirmation", map[string]string{
		"applicantName": name,
		"jobTitle":      jobTitle,
		"applicationId": applicationID,
		"currentYear":   fmt.Sprintf("%d", time.Now().Year()),
	})
	if err != nil {
		html = fmt.Sprintf(`
			<h2>Application Received</h2>
			<p>Dear %s,</p>
			<p>Thank you for applying for the <strong>%s</strong> position.</p>
			<p>Your application ID is: <strong>%s</strong></p>
			<p>We will review your application and get back to you soon.</p>
			<p>Best regards,<br>VAH Care Team</p>`, name, jobTitle, applicationID)
	}

	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: fmt.Sprintf("Application Received - %s", jobTitle),
		HTML:    html,
	})
}

// SendApplicationAlert emails the configured admin address about a new
// application. A missing admin address skips the alert without error.
func (m *Mailer) SendApplicationAlert(ctx context.Context, alert ApplicationAlert) error {
	if m.adminEmail == "" {
		m.logger.Warn("Admin email not configured, skipping application alert", map[string]interface{}{
			"application_id": alert.ApplicationID,
		})
		return nil
	}

	message := alert.Message
	if message == "" {
		message = "No message"
	}

	html, err := renderTemplate(m.templateDir, "admin_notification", map[string]string{
		"applicantName":  alert.FullName,
		"applicantEmail": alert.Email,
		"jobTitle":       alert.JobTitle,
		"experience":     alert.Experience,
		"availability":   alert.Availability,
		"applicationId":  alert.ApplicationID,
		"message":        message,
		"submittedAt":    time.Now().Format(time.RFC1123),
	})
	if err != nil {
		html = fmt.Sprintf(`
			<h2>New Job Application Received</h2>
			<p><strong>Position:</strong> %s</p>
			<p><strong>Applicant:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Experience:</strong> %s</p>
			<p><strong>Availability:</strong> %s</p>
			<p><strong>Message:</strong> %s</p>
			<p><strong>Application ID:</strong> %s</p>`,
			alert.JobTitle, alert.FullName, alert.Email, alert.Experience,
			alert.Availability, message, alert.ApplicationID)
	}

	return m.sender.Send(ctx, Message{
		To:      m.adminEmail,
		Subject: fmt.Sprintf("New Job Application - %s", alert.JobTitle),
		HTML:    html,
	})
}

// SendContactConfirmation emails the submitter that their message was
// received.
func (m *Mailer) SendContactConfirmation(ctx context.Context, to, name string) error {
	html, err := renderTemplate(m.templateDir, "contact_confirmation", map[string]string{
		"name":        name,
		"currentYear": fmt.Sprintf("%d", time.Now().Year()),
	})
	if err != nil {
		html = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>We've received your message and will get back to you shortly.</p>
			<p>Best regards,<br>VAH Care Team</p>`, name)
	}

	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: "Thank you for contacting us",
		HTML:    html,
	})
}

// SendContactAlert emails the configured admin address about a new
// contact submission. A missing admin address skips the alert.
func (m *Mailer) SendContactAlert(ctx context.Context, alert ContactAlert) error {
	if m.adminEmail == "" {
		m.logger.Warn("Admin email not configured, skipping contact alert", map[string]interface{}{
			"contact_id": alert.ContactID,
		})
		return nil
	}

	html, err := renderTemplate(m.templateDir, "contact_notification", map[string]string{
		"name":    alert.FullName,
		"email":   alert.Email,
		"phone":   alert.Phone,
		"service": alert.Service,
		"message": alert.Message,
	})
	if err != nil {
		html = fmt.Sprintf(`
			<h2>New Contact Form Submission</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Service:</strong> %s</p>
			<p><strong>Message:</strong><br/>%s</p>`,
			alert.FullName, alert.Email, alert.Service, alert.Message)
	}

	return m.sender.Send(ctx, Message{
		To:      m.adminEmail,
		Subject: fmt.Sprintf("New Contact Form Submission from %s", alert.FullName),
		HTML:    html,
	})
}

// statusMessages maps application statuses to the sentence included in a
// status-change notice.
var statusMessages = map[string]string{
	"under_review": "Your application is currently under review.",
	"interviewed":  "Congratulations! You have been selected for an interview.",
	"accepted":     "Congratulations! Your application has been accepted.",
	"rejected":     "Thank you for your interest. Unfortunately, we have decided to move forward with other candidates.",
}

// SendStatusUpdate emails the applicant about an admin status transition.
func (m *Mailer) SendStatusUpdate(ctx context.Context, to, name, jobTitle, status string) error {
	display := strings.ToUpper(strings.ReplaceAll(status, "_", " "))
	statusMessage := statusMessages[status]

	html, err := renderTemplate(m.templateDir, "status_update", map[string]string{
		"applicantName": name,
		"jobTitle":      jobTitle,
		"status":        display,
		"statusMessage": statusMessage,
	})
	if err != nil {
		html = fmt.Sprintf(`
			<h2>Application Status Update</h2>
			<p>Dear %s,</p>
			<p>Your application for <strong>%s</strong> has been updated.</p>
			<p><strong>Status:</strong> %s</p>
			<p>%s</p>
			<p>Best regards,<br>VAH Care Team</p>`, name, jobTitle, display, statusMessage)
	}

	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: fmt.Sprintf("Application Update - %s", jobTitle),
		HTML:    html,
	})
}
