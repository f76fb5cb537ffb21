package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := NewLocalStore(base)
	ctx := context.Background()

	ref, err := store.Save(ctx, pdfFile("resume.pdf", 13))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasPrefix(ref, "cvs/") {
		t.Fatalf("expected reference under cvs/, got %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(ref)))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Fatalf("unexpected file content %q", data)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(ref))); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err = %v", err)
	}
}

func TestLocalStoreDeleteRejectsEscape(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, ref := range []string{"../etc/passwd", "/etc/passwd", "cvs/../../secret"} {
		if err := store.Delete(ctx, ref); err == nil {
			t.Errorf("Delete(%q) succeeded, want rejection", ref)
		}
	}
}

func TestLocalStoreSignedURL(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir())

	url, err := store.SignedURL("cvs/cv-123-000000001.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL error: %v", err)
	}
	if url != "/uploads/cvs/cv-123-000000001.pdf" {
		t.Fatalf("unexpected URL %q", url)
	}
}

func TestLocalStoreHealthy(t *testing.T) {
	t.Parallel()

	if !NewLocalStore(t.TempDir()).Healthy(context.Background()) {
		t.Fatalf("expected writable tempdir to be healthy")
	}
}
