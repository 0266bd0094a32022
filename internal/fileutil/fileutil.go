// Package fileutil holds the file helpers shared by the pipeline, the server
// and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TempPrefix starts every temp file docfill creates.
const TempPrefix = "docfill-"

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// UniqueName returns TempPrefix + a random UUID + suffix, e.g.
// "docfill-1b4e...-9c2d.rendered.docx". Names never collide across
// concurrent requests.
func UniqueName(suffix string) string {
	return TempPrefix + uuid.NewString() + suffix
}

// WriteTempFile writes content to a new uniquely named file in the system
// temp dir. The returned cleanup removes it and reports removal failures
// so callers can log them.
func WriteTempFile(content []byte, extension string) (path string, cleanup func() error, err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	path = filepath.Join(os.TempDir(), UniqueName("."+extension))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304 -- generated name
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup = func() error { return RemoveIfExists(path) }

	if _, writeErr := f.Write(content); writeErr != nil {
		_ = f.Close()
		_ = cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		_ = cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}
	return path, cleanup, nil
}

// RemoveIfExists deletes path; a file that is already gone is not an error.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a
// name: "work" is a name, "./work.yaml" and "conf/work" are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsWritableDir reports whether a file can be created in dir.
func IsWritableDir(dir string) error {
	f, err := os.CreateTemp(dir, TempPrefix+"probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
