package fileutil_test

// Notes:
// - The write and close error branches of WriteTempFile are not exercised;
//   forcing disk failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docfill/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "compound", extension: "rendered.docx"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "slash", extension: "../x", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `..\x`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "ht\x00ml", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation and cleanup
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := []byte("<html><body>x</body></html>")
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, fileutil.TempPrefix) || !strings.HasSuffix(base, ".html") {
		t.Errorf("temp name %q does not match docfill-*.html", base)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup")
	}
	if err := cleanup(); err != nil {
		t.Errorf("second cleanup() error = %v, want nil", err)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	if _, _, err := fileutil.WriteTempFile(nil, ""); !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionEmpty", err)
	}
	if _, _, err := fileutil.WriteTempFile(nil, "a/b"); !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

func TestWriteTempFile_UniquePaths(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 20 {
		path, cleanup, err := fileutil.WriteTempFile([]byte("x"), "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		t.Cleanup(func() { _ = cleanup() })
		if seen[path] {
			t.Fatalf("duplicate temp path %s", path)
		}
		seen[path] = true
	}
}

// ---------------------------------------------------------------------------
// TestUniqueName - Collision-free names
// ---------------------------------------------------------------------------

func TestUniqueName(t *testing.T) {
	t.Parallel()

	a, b := fileutil.UniqueName(".rendered.docx"), fileutil.UniqueName(".rendered.docx")
	if a == b {
		t.Errorf("UniqueName() returned %q twice", a)
	}
	if !strings.HasPrefix(a, "docfill-") || !strings.HasSuffix(a, ".rendered.docx") {
		t.Errorf("UniqueName() = %q", a)
	}
	// prefix + 36-char UUID + suffix
	if len(a) != len("docfill-")+36+len(".rendered.docx") {
		t.Errorf("UniqueName() length = %d", len(a))
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath / TestIsWritableDir
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.docx")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "none"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"work", false},
		{"my-config", false},
		{"./work.yaml", true},
		{"conf/work", true},
		{`C:\conf\work.yaml`, true},
	}
	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsWritableDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := fileutil.IsWritableDir(dir); err != nil {
		t.Errorf("IsWritableDir(tempdir) = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("IsWritableDir left %d files behind", len(entries))
	}
	if err := fileutil.IsWritableDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("IsWritableDir(missing) = nil, want error")
	}
}
