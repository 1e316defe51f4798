package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
)

// ParseRating converts a study answer grade to a scheduler rating. Both
// the numeric form (1-4) and the named form (again/hard/good/easy) are
// accepted.
func ParseRating(s string) (scheduler.Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "again":
		return scheduler.Again, nil
	case "2", "hard":
		return scheduler.Hard, nil
	case "3", "good":
		return scheduler.Good, nil
	case "4", "easy":
		return scheduler.Easy, nil
	default:
		return 0, fmt.Errorf("invalid rating: %s (must be: 1-4 or again, hard, good, easy)", s)
	}
}

// ParseFieldAssignment splits a --field argument of the form Name=value.
func ParseFieldAssignment(s string) (name, value string, err error) {
	idx := strings.Index(s, "=")
	if idx < 0 {
		return "", "", fmt.Errorf("invalid field assignment: %s (expected Name=value)", s)
	}
	name = strings.TrimSpace(s[:idx])
	if name == "" {
		return "", "", fmt.Errorf("invalid field assignment: %s (field name is empty)", s)
	}
	return name, s[idx+1:], nil
}

// ValidateDeckName validates a deck name
func ValidateDeckName(name string) error {
	if name == "" {
		return fmt.Errorf("deck name cannot be empty")
	}

	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("deck name contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateNoteTypeName validates a note type name
func ValidateNoteTypeName(name string) error {
	if name == "" {
		return fmt.Errorf("note type name cannot be empty")
	}

	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("note type name contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateDirectoryPath validates that a directory path exists
func ValidateDirectoryPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
