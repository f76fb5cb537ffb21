package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const cvNamespace = "cvs"

// LocalStore writes CV files to a per-purpose subdirectory on local disk.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a local-disk store rooted at baseDir. Directories
// are created lazily on first write.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes the file into <baseDir>/cvs with a generated filename and
// returns the reference "cvs/<filename>".
func (s *LocalStore) Save(ctx context.Context, f File) (string, error) {
	dir := filepath.Join(s.baseDir, cvNamespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := generateName(f.Name)
	if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0o644); err != nil {
		return "", fmt.Errorf("write cv file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(cvNamespace, name)), nil
}

// Delete removes a stored file by reference.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	// Refuse anything trying to escape the upload root.
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid file reference: %s", ref)
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil {
		return fmt.Errorf("remove cv file: %w", err)
	}
	return nil
}

// SignedURL returns the static serving path for a local file. Local files
// carry no expiry; the ttl parameter only applies to the object store.
func (s *LocalStore) SignedURL(ref string, ttl time.Duration) (string, error) {
	return "/uploads/" + filepath.ToSlash(filepath.Clean(ref)), nil
}

// Healthy reports whether the upload root exists or can be created.
func (s *LocalStore) Healthy(ctx context.Context) bool {
	return os.MkdirAll(filepath.Join(s.baseDir, cvNamespace), 0o755) == nil
}
