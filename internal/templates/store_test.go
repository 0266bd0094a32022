package templates_test

// Notes:
// - The symlink escape test is skipped where symlinks cannot be created
//   (Windows without developer mode).

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docfill/internal/templates"
)

func populate(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// ---------------------------------------------------------------------------
// TestNewStore - Directory validation
// ---------------------------------------------------------------------------

func TestNewStore(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{name: "existing directory", dir: t.TempDir()},
		{name: "empty path", dir: "", wantErr: templates.ErrInvalidBasePath},
		{name: "missing directory", dir: filepath.Join(t.TempDir(), "none"), wantErr: templates.ErrInvalidBasePath},
		{name: "regular file", dir: file, wantErr: templates.ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := templates.NewStore(tt.dir)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewStore(%q) error = %v, want %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestList - Template listing
// ---------------------------------------------------------------------------

func TestList(t *testing.T) {
	t.Parallel()

	dir := populate(t, "offer.docx", "Contract.DOCX", "scan.pdf", ".hidden.docx", "notes.txt", "~$lock.docx")
	if err := os.Mkdir(filepath.Join(dir, "sub.docx"), 0o750); err != nil {
		t.Fatal(err)
	}

	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.List()
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	want := []string{"Contract.DOCX", "offer.docx", "scan.pdf", "~$lock.docx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	store, err := templates.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.List()
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
}

// ---------------------------------------------------------------------------
// TestPath - Name resolution
// ---------------------------------------------------------------------------

func TestPath(t *testing.T) {
	t.Parallel()

	dir := populate(t, "offer.docx")
	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "existing template", in: "offer.docx"},
		{name: "missing template", in: "other.docx", wantErr: templates.ErrTemplateNotFound},
		{name: "traversal", in: "../offer.docx", wantErr: templates.ErrInvalidName},
		{name: "backslash", in: `..\offer.docx`, wantErr: templates.ErrInvalidName},
		{name: "hidden", in: ".offer.docx", wantErr: templates.ErrInvalidName},
		{name: "wrong extension", in: "offer.txt", wantErr: templates.ErrInvalidName},
		{name: "empty", in: "", wantErr: templates.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := store.Path(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Path(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Path(%q) unexpected error: %v", tt.in, err)
			}
			if got != filepath.Join(store.Dir(), tt.in) {
				t.Errorf("Path(%q) = %q", tt.in, got)
			}
		})
	}
}

func TestPath_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := populate(t, "secret.docx")
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "secret.docx"), filepath.Join(dir, "link.docx")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Path("link.docx"); !errors.Is(err, templates.ErrPathTraversal) {
		t.Errorf("Path(link.docx) error = %v, want ErrPathTraversal", err)
	}
}
