package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iho/txrecon/internal/domain"
)

func TestFileStore_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte(`"Reference"`+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := NewFileStore(path).Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(report.Content) != `"Reference"`+"\n" {
		t.Fatalf("unexpected content %q", report.Content)
	}
	if report.Size != int64(len(report.Content)) {
		t.Fatalf("expected size %d, got %d", len(report.Content), report.Size)
	}
	if report.ModifiedAt.IsZero() {
		t.Fatal("expected modification time")
	}
}

func TestFileStore_NotFound(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.csv"))

	if _, err := store.Stat(context.Background()); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound from Stat, got %v", err)
	}

	if _, err := store.Read(context.Background()); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound from Read, got %v", err)
	}
}

func TestFileStore_Directory(t *testing.T) {
	_, err := NewFileStore(t.TempDir()).Read(context.Background())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO for a directory, got %v", err)
	}
}

func TestFileStore_CacheKeyChangesWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewFileStore(path)
	first, err := store.Stat(context.Background())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	second, err := store.Stat(context.Background())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if first.CacheKey() == second.CacheKey() {
		t.Fatalf("expected cache key to change after rewrite, both %s", first.CacheKey())
	}
}
