package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer overwrites the report file. A write failure is the one fatal
// condition in the pipeline.
type Writer struct {
	createBackup bool
}

// NewWriter creates a writer. With createBackup set, the previous report is
// kept next to the new one with a .bak suffix.
func NewWriter(createBackup bool) *Writer {
	return &Writer{createBackup: createBackup}
}

// Write stores the rendered document at path, creating parent directories
// as needed.
func (w *Writer) Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if w.createBackup {
		if previous, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".bak", previous, 0644); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
