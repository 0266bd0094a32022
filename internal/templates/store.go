// Package templates serves template files from a directory.
//
// A Store exposes the .docx and .pdf files directly inside its directory.
// Subdirectories and hidden files are not listed, and names that would
// resolve outside the directory are rejected.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for template store operations.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidName      = errors.New("invalid template name")
	ErrInvalidBasePath  = errors.New("invalid templates directory")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// Extensions lists the accepted template extensions, lower case.
var Extensions = []string{".docx", ".pdf"}

// Store resolves template names inside one directory.
type Store struct {
	basePath string
}

// NewStore opens dir. The directory must exist and be readable.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	// Containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &Store{basePath: absPath}, nil
}

// Dir returns the resolved directory.
func (s *Store) Dir() string {
	return s.basePath
}

// List returns template file names sorted alphabetically.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || ValidateName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Path resolves name to an absolute path of an existing template.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.basePath, name)
	if err := s.verifyPathContainment(filePath); err != nil {
		return "", err
	}
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return filePath, nil
}

// ValidateName accepts a bare file name with a template extension.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: hidden file %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case !HasTemplateExt(name):
		return fmt.Errorf("%w: %q must end in %s", ErrInvalidName, name, strings.Join(Extensions, " or "))
	}
	return nil
}

// HasTemplateExt reports whether name ends in an accepted extension.
func HasTemplateExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// verifyPathContainment resolves symlinks and requires the result to stay
// below basePath.
func (s *Store) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}
	if !strings.HasPrefix(absFilePath, s.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes templates directory", ErrPathTraversal)
	}
	return nil
}
