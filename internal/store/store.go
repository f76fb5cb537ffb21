package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vahcare-api/internal/config"
	"vahcare-api/pkg/models"
	"vahcare-api/pkg/utils"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps database access for jobs, applications and contacts.
type Store struct {
	db *gorm.DB
}

// JobQuery provides filter and pagination options for job listings.
type JobQuery struct {
	Location  string
	Specialty string
	Page      int
	Limit     int
}

// ApplicationQuery provides filter and pagination options for applications.
type ApplicationQuery struct {
	JobID string
	Page  int
	Limit int
}

// ContactQuery provides filter and pagination options for contacts.
type ContactQuery struct {
	Status string
	Page   int
	Limit  int
}

// New opens the configured database and migrates the schema. The sqlite
// driver is the default; postgres is selected via config for deployments
// that need a shared server.
func New(cfg *config.Config) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.Job{}, &models.Application{}, &models.Contact{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing gorm handle. Used by tests.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Job{}, &models.Application{}, &models.Contact{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// --- Jobs ---

// CreateJob persists a new posting, assigning an ID when absent.
func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = utils.NewObjectID()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetJob returns a job by ID or ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// ListJobs returns postings matching the query, newest first.
func (s *Store) ListJobs(ctx context.Context, q JobQuery) ([]models.Job, error) {
	var jobs []models.Job
	query := applyJobFilters(s.db.WithContext(ctx).Model(&models.Job{}), q).
		Order("created_at DESC")
	query = paginate(query, q.Page, q.Limit)

	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// CountJobs returns the number of postings matching the query filters.
func (s *Store) CountJobs(ctx context.Context, q JobQuery) (int64, error) {
	var total int64
	query := applyJobFilters(s.db.WithContext(ctx).Model(&models.Job{}), q)
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return total, nil
}

// UpdateJob replaces the mutable fields of a posting.
func (s *Store) UpdateJob(ctx context.Context, id string, job *models.Job) error {
	tx := s.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(map[string]any{
		"title":       job.Title,
		"location":    job.Location,
		"specialty":   job.Specialty,
		"description": job.Description,
		"salary":      job.Salary,
	})
	if tx.Error != nil {
		return fmt.Errorf("update job: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearJobs removes every posting. Used by the seed command.
func (s *Store) ClearJobs(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Job{}).Error; err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}
	return nil
}

// DeleteJob removes a posting.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete job: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Applications ---

// CreateApplication persists a new application. The CV path must already
// be set; it is never updated afterwards.
func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = utils.NewObjectID()
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// GetApplication returns an application by ID or ErrNotFound.
func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// ListApplications returns applications matching the query, newest first.
func (s *Store) ListApplications(ctx context.Context, q ApplicationQuery) ([]models.Application, error) {
	var apps []models.Application
	query := s.db.WithContext(ctx).Model(&models.Application{}).Order("submitted_at DESC")
	if q.JobID != "" {
		query = query.Where("job_id = ?", q.JobID)
	}
	query = paginate(query, q.Page, q.Limit)

	if err := query.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// CountApplications returns the number of applications matching the filters.
func (s *Store) CountApplications(ctx context.Context, q ApplicationQuery) (int64, error) {
	var total int64
	query := s.db.WithContext(ctx).Model(&models.Application{})
	if q.JobID != "" {
		query = query.Where("job_id = ?", q.JobID)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return total, nil
}

// UpdateApplicationStatus transitions an application to a new status.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	tx := s.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return fmt.Errorf("update application status: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteApplication removes an application record. The stored CV file is
// the caller's responsibility.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete application: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Contacts ---

// CreateContact persists a new contact submission.
func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = utils.NewObjectID()
	}
	if contact.Status == "" {
		contact.Status = models.ContactStatusNew
	}
	if contact.SubmittedAt.IsZero() {
		contact.SubmittedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// GetContact returns a contact by ID or ErrNotFound.
func (s *Store) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &contact, nil
}

// ListContacts returns contacts matching the query, newest first.
func (s *Store) ListContacts(ctx context.Context, q ContactQuery) ([]models.Contact, error) {
	var contacts []models.Contact
	query := s.db.WithContext(ctx).Model(&models.Contact{}).Order("submitted_at DESC")
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	query = paginate(query, q.Page, q.Limit)

	if err := query.Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// CountContacts returns the number of contacts matching the filters.
func (s *Store) CountContacts(ctx context.Context, q ContactQuery) (int64, error) {
	var total int64
	query := s.db.WithContext(ctx).Model(&models.Contact{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}

// UpdateContactStatus transitions a contact to a new status.
func (s *Store) UpdateContactStatus(ctx context.Context, id, status string) error {
	tx := s.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return fmt.Errorf("update contact status: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- helpers ---

func applyJobFilters(db *gorm.DB, q JobQuery) *gorm.DB {
	if q.Location != "" {
		db = db.Where("location = ?", q.Location)
	}
	if q.Specialty != "" {
		db = db.Where("specialty = ?", q.Specialty)
	}
	return db
}

func paginate(db *gorm.DB, page, limit int) *gorm.DB {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return db.Offset((page - 1) * limit).Limit(limit)
}
