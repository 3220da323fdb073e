package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes a generated file to its path, creating the directory if it
// doesn't exist. An unchanged file is left untouched and reported as false.
func WriteFile(file *GeneratedFile) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	if old, err := os.ReadFile(file.Path); err == nil && bytes.Equal(old, file.Content) {
		return false, nil
	}

	if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
		return false, fmt.Errorf("writing file %s: %w", file.Path, err)
	}

	return true, nil
}
