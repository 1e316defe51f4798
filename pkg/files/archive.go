package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/models"
	"gopkg.in/yaml.v3"
)

// validatePath rejects path components that would escape the project
// directory.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("path must not contain '..'")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("path must be relative")
	}
	return nil
}

// ArchiveNote moves a note out of the active set. Its review states are
// left in place so unarchiving restores scheduling.
func ArchiveNote(path string) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid note path: %w", err)
	}

	src := filepath.Join(TypedeckDir, NotesDir, path)
	dst := filepath.Join(TypedeckDir, ArchiveDir, NotesDir, path)

	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("note not found at path '%s'", path)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to archive note '%s': %w", path, err)
	}

	return nil
}

// UnarchiveNote moves an archived note back into the active set.
func UnarchiveNote(path string) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid note path: %w", err)
	}

	src := filepath.Join(TypedeckDir, ArchiveDir, NotesDir, path)
	dst := filepath.Join(TypedeckDir, NotesDir, path)

	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("archived note not found at path '%s'", path)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to unarchive note '%s': %w", path, err)
	}

	return nil
}

// ListArchivedNotes lists the filenames under the archive.
func ListArchivedNotes() ([]string, error) {
	return listYAML(filepath.Join(TypedeckDir, ArchiveDir, NotesDir), "archived notes")
}

// ReadArchivedNote loads a note from the archive.
func ReadArchivedNote(path string) (*models.Note, error) {
	absPath := filepath.Join(TypedeckDir, ArchiveDir, NotesDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived note %s: %w", path, err)
	}

	var note models.Note
	if err := yaml.Unmarshal(content, &note); err != nil {
		return nil, fmt.Errorf("failed to parse note YAML %s: %w", path, err)
	}

	note.Path = path

	return &note, nil
}
