package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	TypedeckDir  = ".typedeck"
	NoteTypesDir = "notetypes"
	NotesDir     = "notes"
	DecksDir     = "decks"
	ReviewsDir   = "reviews"
	ArchiveDir   = "archive"
	SettingsFile = "settings.yaml"
	TagsFile     = "tags.yaml"
)

func InitProjectStructure() error {
	dirs := []string{
		TypedeckDir,
		filepath.Join(TypedeckDir, NoteTypesDir),
		filepath.Join(TypedeckDir, NotesDir),
		filepath.Join(TypedeckDir, DecksDir),
		filepath.Join(TypedeckDir, ReviewsDir),
		filepath.Join(TypedeckDir, ArchiveDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the current directory has been initialized.
func ProjectExists() bool {
	info, err := os.Stat(TypedeckDir)
	return err == nil && info.IsDir()
}

// Slugify converts a display name to a filename-safe slug.
func Slugify(displayName string) string {
	slug := strings.ToLower(displayName)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "unnamed"
	}
	return slug
}

func ReadNoteType(path string) (*models.NoteType, error) {
	absPath := filepath.Join(TypedeckDir, NoteTypesDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read note type %s: %w", path, err)
	}

	var nt models.NoteType
	if err := yaml.Unmarshal(content, &nt); err != nil {
		return nil, fmt.Errorf("failed to parse note type YAML %s: %w", path, err)
	}

	return &nt, nil
}

func WriteNoteType(nt *models.NoteType) error {
	if nt.Name == "" {
		return fmt.Errorf("note type has no name")
	}

	absPath := filepath.Join(TypedeckDir, NoteTypesDir, Slugify(nt.Name)+".yaml")

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for note type: %w", err)
	}

	content, err := yaml.Marshal(nt)
	if err != nil {
		return fmt.Errorf("failed to marshal note type to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write note type %s: %w", nt.Name, err)
	}

	return nil
}

func ListNoteTypes() ([]string, error) {
	return listYAML(filepath.Join(TypedeckDir, NoteTypesDir), "note types")
}

func ReadNote(path string) (*models.Note, error) {
	absPath := filepath.Join(TypedeckDir, NotesDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", path, err)
	}

	var note models.Note
	if err := yaml.Unmarshal(content, &note); err != nil {
		return nil, fmt.Errorf("failed to parse note YAML %s: %w", path, err)
	}

	note.Path = path
	if info, err := os.Stat(absPath); err == nil {
		note.Modified = info.ModTime()
	}

	return &note, nil
}

func WriteNote(note *models.Note) error {
	if note.ID == "" {
		return fmt.Errorf("note has no ID")
	}
	if note.Path == "" {
		note.Path = note.ID + ".yaml"
	}

	absPath := filepath.Join(TypedeckDir, NotesDir, note.Path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for note: %w", err)
	}

	content, err := yaml.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", note.Path, err)
	}

	return nil
}

func ListNotes() ([]string, error) {
	return listYAML(filepath.Join(TypedeckDir, NotesDir), "notes")
}

func DeleteNote(path string) error {
	absPath := filepath.Join(TypedeckDir, NotesDir, path)
	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", path, err)
	}
	return nil
}

func ReadDeck(path string) (*models.Deck, error) {
	absPath := filepath.Join(TypedeckDir, DecksDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}

	var deck models.Deck
	if err := yaml.Unmarshal(content, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse deck YAML %s: %w", path, err)
	}

	deck.Path = path

	return &deck, nil
}

func WriteDeck(deck *models.Deck) error {
	if deck.Name == "" {
		return fmt.Errorf("deck has no name")
	}
	if deck.Path == "" {
		deck.Path = Slugify(deck.Name) + ".yaml"
	}

	absPath := filepath.Join(TypedeckDir, DecksDir, deck.Path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for deck: %w", err)
	}

	content, err := yaml.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal deck to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write deck %s: %w", deck.Path, err)
	}

	return nil
}

func ListDecks() ([]string, error) {
	return listYAML(filepath.Join(TypedeckDir, DecksDir), "decks")
}

func listYAML(dir, what string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
