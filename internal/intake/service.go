package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vahcare-api/internal/api/validation"
	"vahcare-api/internal/config"
	"vahcare-api/internal/logging"
	"vahcare-api/internal/mailer"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
	"vahcare-api/pkg/models"
)

// Service orchestrates the submission pipelines: validate, persist,
// store the file (applications only), then fire notifications. All
// collaborators are injected; the service holds no global state.
type Service struct {
	store    *store.Store
	files    uploads.Store
	mailer   *mailer.Mailer
	validate *validator.Validate
	maxSize  int64
	mailWait time.Duration
	logger   logging.Logger
}

// New creates an intake service.
func New(cfg *config.Config, st *store.Store, files uploads.Store, m *mailer.Mailer) *Service {
	return &Service{
		store:    st,
		files:    files,
		mailer:   m,
		validate: validation.NewValidator(),
		maxSize:  cfg.Storage.MaxFileSize,
		mailWait: cfg.SMTP.Timeout,
		logger:   logging.GetGlobalLogger(),
	}
}

// SubmitApplication runs the application pipeline. The job reference is
// resolved before the file is accepted so a bad job ID never leaves an
// orphaned upload behind.
func (s *Service) SubmitApplication(ctx context.Context, req models.ApplicationRequest, file *uploads.File) (*models.ApplicationResult, error) {
	normalizeApplication(&req)

	if err := s.validate.Struct(&req); err != nil {
		return nil, validationError(validation.Translate(err))
	}

	if file == nil || len(file.Data) == 0 {
		return nil, rejection(KindFileRequired, "CV file is required")
	}

	job, err := s.store.GetJob(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, rejection(KindNotFound, "Job not found")
		}
		s.logger.Error("Job lookup failed", map[string]interface{}{
			"job_id": req.JobID,
			"error":  err.Error(),
		})
		return nil, rejection(KindUnavailable, "Service temporarily unavailable. Please try again later.")
	}

	if err := uploads.CheckFile(*file, s.maxSize); err != nil {
		switch {
		case errors.Is(err, uploads.ErrFileType):
			return nil, rejection(KindFileType, "Only PDF and Word documents are allowed for CV upload.")
		case errors.Is(err, uploads.ErrFileSize):
			return nil, rejection(KindFileSize, fmt.Sprintf("File too large. Maximum size is %dMB.", s.maxSize/(1024*1024)))
		default:
			return nil, rejection(KindInternal, "File upload error.")
		}
	}

	cvPath, err := s.files.Save(ctx, *file)
	if err != nil {
		s.logger.Error("CV storage failed", map[string]interface{}{
			"job_id": req.JobID,
			"error":  err.Error(),
		})
		return nil, rejection(KindUnavailable, "File storage is currently unavailable. Please try again later.")
	}

	app := &models.Application{
		JobID:        req.JobID,
		FullName:     req.FullName,
		Email:        req.Email,
		Experience:   req.Experience,
		Availability: req.Availability,
		CVPath:       cvPath,
		Message:      req.Message,
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		s.logger.Error("Application persistence failed", map[string]interface{}{
			"job_id": req.JobID,
			"error":  err.Error(),
		})
		// The record never existed, so the upload must not linger.
		if delErr := s.files.Delete(ctx, cvPath); delErr != nil {
			s.logger.Warn("Failed to clean up CV after persistence failure", map[string]interface{}{
				"cv_path": cvPath,
				"error":   delErr.Error(),
			})
		}
		return nil, rejection(KindUnavailable, "Service temporarily unavailable. Please try again later.")
	}

	s.logger.Info("Application submitted", map[string]interface{}{
		"application_id": app.ID,
		"job_id":         job.ID,
		"job_title":      job.Title,
	})

	s.notifyApplication(app, job.Title)

	return &models.ApplicationResult{
		ApplicationID: app.ID,
		JobTitle:      job.Title,
	}, nil
}

// SubmitContact runs the contact pipeline.
func (s *Service) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.ContactResult, error) {
	normalizeContact(&req)

	if err := s.validate.Struct(&req); err != nil {
		return nil, validationError(validation.Translate(err))
	}

	contact := &models.Contact{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Service:  req.Service,
		Message:  req.Message,
	}

	if err := s.store.CreateContact(ctx, contact); err != nil {
		s.logger.Error("Contact persistence failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, rejection(KindUnavailable, "Service temporarily unavailable. Please try again later.")
	}

	s.logger.Info("Contact submitted", map[string]interface{}{
		"contact_id": contact.ID,
		"service":    contact.Service,
	})

	s.notifyContact(contact)

	return &models.ContactResult{ContactID: contact.ID}, nil
}

// UpdateApplicationStatus transitions an application and notifies the
// applicant. The email is best-effort; a transport failure does not undo
// the transition.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id, status string) (*models.Application, error) {
	if !models.IsValidValue(models.ApplicationStatuses, status) {
		return nil, validationError([]models.FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of: %s", strings.Join(models.ApplicationStatuses, ", ")),
		}})
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, rejection(KindNotFound, "Application not found")
		}
		return nil, rejection(KindUnavailable, "Service temporarily unavailable. Please try again later.")
	}

	if err := s.store.UpdateApplicationStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, rejection(KindNotFound, "Application not found")
		}
		return nil, rejection(KindUnavailable, "Service temporarily unavailable. Please try again later.")
	}
	app.Status = status

	jobTitle := app.JobID
	if job, jobErr := s.store.GetJob(ctx, app.JobID); jobErr == nil {
		jobTitle = job.Title
	}

	mailCtx, cancel := s.mailContext()
	defer cancel()
	if err := s.mailer.SendStatusUpdate(mailCtx, app.Email, app.FullName, jobTitle, status); err != nil {
		s.logger.Warn("Failed to send status update email", map[string]interface{}{
			"application_id": app.ID,
			"status":         status,
			"error":          err.Error(),
		})
	}

	return app, nil
}

// notifyApplication fires the two post-submission emails. Each send is
// isolated: a failed confirmation never suppresses the admin alert.
func (s *Service) notifyApplication(app *models.Application, jobTitle string) {
	ctx, cancel := s.mailContext()
	defer cancel()

	if err := s.mailer.SendApplicationConfirmation(ctx, app.Email, app.FullName, jobTitle, app.ID); err != nil {
		s.logger.Warn("Failed to send application confirmation", map[string]interface{}{
			"application_id": app.ID,
			"error":          err.Error(),
		})
	}

	if err := s.mailer.SendApplicationAlert(ctx, mailer.ApplicationAlert{
		ApplicationID: app.ID,
		JobTitle:      jobTitle,
		FullName:      app.FullName,
		Email:         app.Email,
		Experience:    app.Experience,
		Availability:  app.Availability,
		Message:       app.Message,
	}); err != nil {
		s.logger.Warn("Failed to send application admin alert", map[string]interface{}{
			"application_id": app.ID,
			"error":          err.Error(),
		})
	}
}

func (s *Service) notifyContact(contact *models.Contact) {
	ctx, cancel := s.mailContext()
	defer cancel()

	if err := s.mailer.SendContactConfirmation(ctx, contact.Email, contact.FullName); err != nil {
		s.logger.Warn("Failed to send contact confirmation", map[string]interface{}{
			"contact_id": contact.ID,
			"error":      err.Error(),
		})
	}

	if err := s.mailer.SendContactAlert(ctx, mailer.ContactAlert{
		ContactID: contact.ID,
		FullName:  contact.FullName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Service:   contact.Service,
		Message:   contact.Message,
	}); err != nil {
		s.logger.Warn("Failed to send contact admin alert", map[string]interface{}{
			"contact_id": contact.ID,
			"error":      err.Error(),
		})
	}
}

// mailContext bounds notification delivery independently of the request
// context: a client disconnect after persistence must not cancel the
// emails for a submission that has already completed.
func (s *Service) mailContext() (context.Context, context.CancelFunc) {
	wait := s.mailWait
	if wait <= 0 {
		wait = 10 * time.Second
	}
	// Two sequential sends share the window.
	return context.WithTimeout(context.Background(), 2*wait)
}

func normalizeApplication(req *models.ApplicationRequest) {
	req.JobID = strings.TrimSpace(req.JobID)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Experience = strings.TrimSpace(req.Experience)
	req.Availability = strings.TrimSpace(req.Availability)
	req.Message = strings.TrimSpace(req.Message)
}

func normalizeContact(req *models.ContactRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Service = strings.TrimSpace(req.Service)
	req.Message = strings.TrimSpace(req.Message)
}
