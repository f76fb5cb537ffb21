package uploads

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"vahcare-api/internal/config"
	"vahcare-api/pkg/utils"
)

// Sentinel errors produced by the filter stage. Handlers map each to its
// own user-facing message, so they must stay distinguishable.
var (
	ErrFileType = errors.New("file type not allowed")
	ErrFileSize = errors.New("file exceeds maximum size")
)

// AllowedContentTypes lists the declared media types a CV upload may carry.
var AllowedContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AllowedExtensions lists the file extensions a CV upload may carry.
var AllowedExtensions = []string{".pdf", ".doc", ".docx"}

// File is an upload payload buffered in memory.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Store abstracts where CV files end up. The returned reference is what
// the application record persists; it is opaque to callers.
type Store interface {
	// Save writes the file under the "cvs" namespace and returns a durable reference.
	Save(ctx context.Context, f File) (string, error)

	// Delete removes a previously stored file. Callers treat failures as
	// best-effort and only log them.
	Delete(ctx context.Context, ref string) error

	// SignedURL returns a time-limited read URL for the reference.
	SignedURL(ref string, ttl time.Duration) (string, error)

	// Healthy reports whether the backend is reachable and writable.
	Healthy(ctx context.Context) bool
}

// New selects the configured storage backend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Type {
	case "s3":
		return NewS3Store(cfg)
	case "local", "":
		return NewLocalStore(cfg.Storage.UploadDir), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

// CheckFile runs the filter stage: extension, declared media type and size
// are validated before any backend is invoked.
func CheckFile(f File, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !utils.Contains(AllowedExtensions, ext) {
		return ErrFileType
	}
	if !utils.Contains(AllowedContentTypes, f.ContentType) {
		return ErrFileType
	}
	if maxSize > 0 && f.Size > maxSize {
		return ErrFileSize
	}
	return nil
}

// generateName builds a collision-resistant filename preserving the
// original extension: cv-<unix millis>-<random suffix><ext>.
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("cv-%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}
