package storage

import (
	"errors"
	"os"
	"path/filepath"
)

const DailyNotesDirName = "daily-notes"

// EnsureLayout creates the notes directory tree and an empty tasks document
// when they are missing.
func EnsureLayout(notesDir, tasksFile string) error {
	if err := os.MkdirAll(filepath.Join(notesDir, DailyNotesDirName), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tasksFile), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(tasksFile); errors.Is(err, os.ErrNotExist) {
		return os.WriteFile(tasksFile, nil, 0o644)
	} else if err != nil {
		return err
	}
	return nil
}
