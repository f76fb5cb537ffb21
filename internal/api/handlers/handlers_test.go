package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vahcare-api/internal/config"
	"vahcare-api/internal/intake"
	"vahcare-api/internal/mailer"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
	"vahcare-api/pkg/models"
)

// memFiles is an in-memory uploads.Store for handler tests.
type memFiles struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemFiles() *memFiles {
	return &memFiles{saved: make(map[string][]byte)}
}

func (m *memFiles) Save(ctx context.Context, f uploads.File) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref := "cvs/" + f.Name
	m.saved[ref] = f.Data
	return ref, nil
}

func (m *memFiles) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, ref)
	return nil
}

func (m *memFiles) SignedURL(ref string, ttl time.Duration) (string, error) {
	return "/uploads/" + ref, nil
}

func (m *memFiles) Healthy(ctx context.Context) bool { return true }

func (m *memFiles) has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[ref]
	return ok
}

type nullSender struct{}

func (nullSender) Send(ctx context.Context, msg mailer.Message) error { return nil }

type testEnv struct {
	e     *echo.Echo
	store *store.Store
	files *memFiles
	svc   *intake.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.MaxFileSize = 10 * 1024 * 1024
	cfg.SMTP.Timeout = time.Second
	cfg.SMTP.TemplateDir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st, err := store.NewWithDB(db)
	if err != nil {
		t.Fatalf("NewWithDB error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	files := newMemFiles()
	svc := intake.New(cfg, st, files, mailer.New(cfg, nullSender{}))

	return &testEnv{e: echo.New(), store: st, files: files, svc: svc}
}

func (env *testEnv) seedJob(t *testing.T, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:       title,
		Location:    "England",
		Specialty:   "Registered Nurse",
		Description: strings.Repeat("Detailed description of the role and duties. ", 2),
		Salary:      "30,000 - 35,000",
	}
	if err := env.store.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	return job
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}

// multipartApplication builds an application form body. An empty filename
// omits the cv part entirely.
func multipartApplication(t *testing.T, jobID, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"jobId":        jobID,
		"fullName":     "Jane Doe",
		"email":        "jane@example.com",
		"experience":   "1-3",
		"availability": "immediately",
		"message":      "Looking forward to hearing from you.",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cv"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create cv part: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
			t.Fatalf("write cv part: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestApplyHandlerSuccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	job := env.seedJob(t, "Registered Nurse - Care Home")

	body, contentType := multipartApplication(t, job.ID, "resume.pdf", "application/pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/apply", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	c := env.e.NewContext(req, rec)
	if err := ApplyHandler(env.svc)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success response, got %v", resp)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", resp)
	}
	if data["jobTitle"] != job.Title {
		t.Fatalf("expected jobTitle %q, got %v", job.Title, data["jobTitle"])
	}
	id, _ := data["applicationId"].(string)
	if len(id) != 24 {
		t.Fatalf("expected 24-char applicationId, got %q", id)
	}
	if !env.files.has("cvs/resume.pdf") {
		t.Fatalf("expected CV to be stored")
	}
}

func TestApplyHandlerMissingFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	job := env.seedJob(t, "Registered Nurse")

	body, contentType := multipartApplication(t, job.ID, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/apply", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := ApplyHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["error"] != "CV file is required" {
		t.Fatalf("unexpected error %v", resp["error"])
	}
}

func TestApplyHandlerUnknownJob(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body, contentType := multipartApplication(t, "aaaaaaaaaaaaaaaaaaaaaaaa", "resume.pdf", "application/pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/apply", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := ApplyHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["error"] != "Job not found" {
		t.Fatalf("unexpected error %v", resp["error"])
	}
}

func TestApplyHandlerBadFileType(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	job := env.seedJob(t, "Registered Nurse")

	body, contentType := multipartApplication(t, job.ID, "resume.exe", "application/octet-stream")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/apply", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := ApplyHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["error"] != "Only PDF and Word documents are allowed for CV upload." {
		t.Fatalf("unexpected error %v", resp["error"])
	}
}

func TestApplyHandlerValidationErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	_ = w.WriteField("jobId", "not-an-id")
	_ = w.WriteField("email", "bad")
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/apply", buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	if err := ApplyHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	errs, ok := resp["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected itemized errors, got %v", resp)
	}
}

func TestSubmitContactHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	payload := `{"name":"John Smith","email":"john@example.com","service":"home_care","message":"I would like to know more about your home care services."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := SubmitContactHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	data, _ := resp["data"].(map[string]interface{})
	id, _ := data["contactId"].(string)
	if len(id) != 24 {
		t.Fatalf("expected 24-char contactId, got %q", id)
	}
}

func TestSubmitContactHandlerValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	payload := `{"name":"J","email":"bad","service":"nope","message":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := SubmitContactHandler(env.svc)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if _, ok := resp["errors"].([]interface{}); !ok {
		t.Fatalf("expected itemized errors, got %v", resp)
	}
}

func TestListJobsHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedJob(t, "First Role")
	env.seedJob(t, "Second Role")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=1&page=2", nil)
	rec := httptest.NewRecorder()

	if err := ListJobsHandler(env.store)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["count"] != float64(1) || resp["total"] != float64(2) {
		t.Fatalf("unexpected pagination metadata %v", resp)
	}
	if resp["page"] != float64(2) || resp["pages"] != float64(2) {
		t.Fatalf("unexpected page metadata %v", resp)
	}
}

func TestGetJobHandlerNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/aaaaaaaaaaaaaaaaaaaaaaaa", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("aaaaaaaaaaaaaaaaaaaaaaaa")

	if err := GetJobHandler(env.store)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["error"] != "Job not found" {
		t.Fatalf("unexpected error %v", resp["error"])
	}
}

func TestCreateJobHandlerValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	payload := `{"title":"R","location":"Scotland","specialty":"Registered Nurse","description":"short","salary":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := CreateJobHandler(env.store)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateContactStatusHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	contact := &models.Contact{
		FullName: "John Smith",
		Email:    "john@example.com",
		Service:  "home_care",
		Message:  "I would like to know more about your services.",
	}
	if err := env.store.CreateContact(context.Background(), contact); err != nil {
		t.Fatalf("CreateContact error: %v", err)
	}

	payload := `{"status":"contacted"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/contacts/"+contact.ID, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(contact.ID)

	if err := UpdateContactStatusHandler(env.store)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	data, _ := resp["data"].(map[string]interface{})
	if data["status"] != "contacted" {
		t.Fatalf("expected contacted status, got %v", data["status"])
	}
}

func TestApplicationCVHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	job := env.seedJob(t, "Registered Nurse")

	app := &models.Application{
		JobID:        job.ID,
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Experience:   "1-3",
		Availability: "immediately",
		CVPath:       "cvs/resume.pdf",
	}
	if err := env.store.CreateApplication(context.Background(), app); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+app.ID+"/cv", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(app.ID)

	if err := ApplicationCVHandler(env.store, env.files)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	data, _ := resp["data"].(map[string]interface{})
	if data["url"] != "/uploads/cvs/resume.pdf" {
		t.Fatalf("unexpected url %v", data["url"])
	}
}

func TestDeleteApplicationHandlerRemovesCV(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	job := env.seedJob(t, "Registered Nurse")

	ref, err := env.files.Save(context.Background(), uploads.File{Name: "resume.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	app := &models.Application{
		JobID:        job.ID,
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Experience:   "1-3",
		Availability: "immediately",
		CVPath:       ref,
	}
	if err := env.store.CreateApplication(context.Background(), app); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/applications/"+app.ID, nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(app.ID)

	if err := DeleteApplicationHandler(env.store, env.files)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.files.has(ref) {
		t.Fatalf("expected CV to be removed with the application")
	}
	if _, err := env.store.GetApplication(context.Background(), app.ID); err == nil {
		t.Fatalf("expected application record to be gone")
	}
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := HealthHandler(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	if err := ReadinessHandler(env.store, env.files)(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("readiness handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d", rec.Code)
	}
}
