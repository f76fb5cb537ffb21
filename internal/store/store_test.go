package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vahcare-api/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	st, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("NewWithDB error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedJob(t *testing.T, st *Store, title, location, specialty string) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:       title,
		Location:    location,
		Specialty:   specialty,
		Description: "A long enough description of the role and its responsibilities for listing purposes.",
		Salary:      "25,000 - 30,000",
	}
	if err := st.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	return job
}

func TestJobCreateAssignsID(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	job := seedJob(t, st, "Registered Nurse", "England", "Registered Nurse")

	if len(job.ID) != 24 {
		t.Fatalf("expected 24-char ID, got %q", job.ID)
	}
	if job.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}

	fetched, err := st.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob error: %v", err)
	}
	if fetched.Title != job.Title {
		t.Fatalf("expected title %q, got %q", job.Title, fetched.Title)
	}
}

func TestGetJobNotFound(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	_, err := st.GetJob(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListJobsFilters(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	seedJob(t, st, "Nurse England", "England", "Registered Nurse")
	seedJob(t, st, "Nurse Wales", "Wales", "Registered Nurse")
	seedJob(t, st, "Kitchen Wales", "Wales", "Kitchen Assistant")

	all, err := st.ListJobs(ctx, JobQuery{})
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(all))
	}

	wales, err := st.ListJobs(ctx, JobQuery{Location: "Wales"})
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(wales) != 2 {
		t.Fatalf("expected 2 Wales jobs, got %d", len(wales))
	}

	both, err := st.ListJobs(ctx, JobQuery{Location: "Wales", Specialty: "Kitchen Assistant"})
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(both) != 1 {
		t.Fatalf("expected 1 combined-filter job, got %d", len(both))
	}
	if both[0].Title != "Kitchen Wales" {
		t.Fatalf("expected Kitchen Wales, got %q", both[0].Title)
	}

	total, err := st.CountJobs(ctx, JobQuery{Location: "Wales"})
	if err != nil {
		t.Fatalf("CountJobs error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected count 2, got %d", total)
	}
}

func TestListJobsPagination(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedJob(t, st, "Job", "England", "Health Assistant")
	}

	page1, err := st.ListJobs(ctx, JobQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 jobs on page 1, got %d", len(page1))
	}

	page3, err := st.ListJobs(ctx, JobQuery{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(page3) != 1 {
		t.Fatalf("expected 1 job on page 3, got %d", len(page3))
	}
}

func TestUpdateJob(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	job := seedJob(t, st, "Old Title", "England", "House Keeper")

	err := st.UpdateJob(ctx, job.ID, &models.Job{
		Title:       "New Title",
		Location:    "Wales",
		Specialty:   "House Keeper",
		Description: job.Description,
		Salary:      job.Salary,
	})
	if err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}

	updated, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob error: %v", err)
	}
	if updated.Title != "New Title" || updated.Location != "Wales" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := st.UpdateJob(ctx, "bbbbbbbbbbbbbbbbbbbbbbbb", updated); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing job, got %v", err)
	}
}

func TestDeleteJob(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	job := seedJob(t, st, "Doomed", "England", "Health Assistant")

	if err := st.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob error: %v", err)
	}
	if _, err := st.GetJob(ctx, job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected job to be gone, got %v", err)
	}
	if err := st.DeleteJob(ctx, job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestApplicationLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	job := seedJob(t, st, "Registered Nurse", "England", "Registered Nurse")

	app := &models.Application{
		JobID:        job.ID,
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Experience:   "1-3",
		Availability: "immediately",
		CVPath:       "cvs/cv-123-000000001.pdf",
	}
	if err := st.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	if app.Status != models.ApplicationStatusPending {
		t.Fatalf("expected pending status, got %q", app.Status)
	}
	if len(app.ID) != 24 {
		t.Fatalf("expected 24-char ID, got %q", app.ID)
	}

	if err := st.UpdateApplicationStatus(ctx, app.ID, models.ApplicationStatusAccepted); err != nil {
		t.Fatalf("UpdateApplicationStatus error: %v", err)
	}
	fetched, err := st.GetApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetApplication error: %v", err)
	}
	if fetched.Status != models.ApplicationStatusAccepted {
		t.Fatalf("expected accepted status, got %q", fetched.Status)
	}

	byJob, err := st.ListApplications(ctx, ApplicationQuery{JobID: job.ID})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if len(byJob) != 1 {
		t.Fatalf("expected 1 application for job, got %d", len(byJob))
	}

	none, err := st.ListApplications(ctx, ApplicationQuery{JobID: "cccccccccccccccccccccccc"})
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no applications for unknown job, got %d", len(none))
	}

	if err := st.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("DeleteApplication error: %v", err)
	}
	if _, err := st.GetApplication(ctx, app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected application to be gone, got %v", err)
	}
}

func TestContactLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	contact := &models.Contact{
		FullName: "John Smith",
		Email:    "john@example.com",
		Service:  "home_care",
		Message:  "I would like to know more about your home care services.",
	}
	if err := st.CreateContact(ctx, contact); err != nil {
		t.Fatalf("CreateContact error: %v", err)
	}
	if contact.Status != models.ContactStatusNew {
		t.Fatalf("expected new status, got %q", contact.Status)
	}

	if err := st.UpdateContactStatus(ctx, contact.ID, models.ContactStatusResolved); err != nil {
		t.Fatalf("UpdateContactStatus error: %v", err)
	}

	resolved, err := st.ListContacts(ctx, ContactQuery{Status: models.ContactStatusResolved})
	if err != nil {
		t.Fatalf("ListContacts error: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved contact, got %d", len(resolved))
	}

	total, err := st.CountContacts(ctx, ContactQuery{})
	if err != nil {
		t.Fatalf("CountContacts error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 contact total, got %d", total)
	}

	if err := st.UpdateContactStatus(ctx, "dddddddddddddddddddddddd", models.ContactStatusContacted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing contact, got %v", err)
	}
}
