// Package fileutils opens the input and output files of a tagging run and
// reports failures as *tagerror.ResourceError.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/txtag/internal/tagerror"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ResolvePath joins name onto dir unless name is absolute or dir is empty.
func ResolvePath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// OpenInput opens a file for reading.
func OpenInput(filePath string) (*os.File, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &tagerror.ResourceError{Path: filePath, Op: "open", Err: err}
	}
	if info.IsDir() {
		return nil, &tagerror.ResourceError{Path: filePath, Op: "open", Err: fmt.Errorf("is a directory")}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, &tagerror.ResourceError{Path: filePath, Op: "open", Err: err}
	}
	return file, nil
}

// CreateOutput creates or truncates a file for writing, creating missing
// parent directories.
func CreateOutput(filePath string) (*os.File, error) {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, &tagerror.ResourceError{Path: filePath, Op: "create", Err: err}
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, &tagerror.ResourceError{Path: filePath, Op: "create", Err: err}
	}
	return file, nil
}
