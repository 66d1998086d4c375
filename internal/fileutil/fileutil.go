// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrFileNameInvalid        = errors.New("invalid file name")
	ErrNotDirectory           = errors.New("not a directory")
)

// tempPrefix names every temporary file created by this module.
const tempPrefix = "invoice2pdf-"

// FilePermissions is applied to written artifacts (rw-r--r--).
const FilePermissions = 0o644

// WriteTempFile stages content in a temporary file named *.extension.
// The caller must run cleanup once the file is no longer needed.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	if err := fill(f, []byte(content)); err != nil {
		return "", nil, err
	}

	path = f.Name()
	return path, func() { _ = os.Remove(path) }, nil
}

// WriteFileAtomic replaces path with data via a sibling temp file and a
// rename. Readers see the old content or the new, never a partial file.
// The parent directory must already exist.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := RequireDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if err := fill(f, data); err != nil {
		return err
	}

	staged := f.Name()
	if err := os.Chmod(staged, FilePermissions); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// fill writes data to a freshly created f and closes it.
// On failure f is removed so no partial file is left behind.
func fill(f *os.File, data []byte) error {
	_, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("writing temp file: %w", err)
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

// ValidateFileName checks that name can be used as a single path element.
// Rejects empty names, separators, null bytes and the "." and ".." entries.
func ValidateFileName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrFileNameInvalid, name)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrFileNameInvalid, name)
	}
	return nil
}

// RequireDir returns an error unless path exists and is a directory.
// The returned error wraps os.ErrNotExist or ErrNotDirectory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
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

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "acme" -> false (name)
//   - "./acme.yaml" -> true (relative path)
//   - "/abs/invoices/acme.yaml" -> true (absolute)
//   - "C:\invoices\acme.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
