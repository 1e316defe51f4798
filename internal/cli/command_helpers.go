package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: files.TypedeckDir,
	}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(filepath string) error {
	parts := strings.Fields(e.DefaultEditor)

	var editorCmd *exec.Cmd
	if len(parts) > 1 {
		editorCmd = exec.Command(parts[0], append(parts[1:], filepath)...)
	} else {
		editorCmd = exec.Command(e.DefaultEditor, filepath)
	}

	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// OpenTempFile creates a temp file with content and opens it
func (e *EditorLauncher) OpenTempFile(name, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", name)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if content != "" {
		if _, err := tmpFile.WriteString(content); err != nil {
			os.Remove(tmpFile.Name())
			return "", fmt.Errorf("failed to write to temp file: %w", err)
		}
	}

	if err := e.OpenFile(tmpFile.Name()); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// NoteResolver resolves user-supplied references to files under the
// project directory
type NoteResolver struct {
	ProjectPath string
}

// NewNoteResolver creates a new note resolver
func NewNoteResolver(projectPath string) *NoteResolver {
	return &NoteResolver{
		ProjectPath: projectPath,
	}
}

// FindNote resolves a note reference to the filename files.ReadNote
// expects. A reference is a note ID, a filename, or a unique ID prefix.
func (r *NoteResolver) FindNote(ref string) (string, error) {
	name := ref
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	if _, err := os.Stat(filepath.Join(r.ProjectPath, files.NotesDir, name)); err == nil {
		return name, nil
	}

	// Fall back to a prefix scan so truncated IDs still resolve.
	notes, err := files.ListNotes()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, n := range notes {
		if strings.HasPrefix(n, ref) {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("note '%s' not found", ref)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("multiple notes match '%s'. Use a longer prefix", ref)
	}
	return matches[0], nil
}

// FindDeck resolves a deck name or filename to the filename
// files.ReadDeck expects.
func (r *NoteResolver) FindDeck(ref string) (string, error) {
	candidates := []string{files.Slugify(ref) + ".yaml"}
	if strings.HasSuffix(ref, ".yaml") {
		candidates = append(candidates, ref)
	}
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(r.ProjectPath, files.DecksDir, name)); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("deck '%s' not found", ref)
}

// FindNoteType resolves a note type name or filename to the filename
// files.ReadNoteType expects.
func (r *NoteResolver) FindNoteType(ref string) (string, error) {
	candidates := []string{files.Slugify(ref) + ".yaml"}
	if strings.HasSuffix(ref, ".yaml") {
		candidates = append(candidates, ref)
	}
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(r.ProjectPath, files.NoteTypesDir, name)); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("note type '%s' not found", ref)
}

// ResolveItem tries a reference as a note, then a deck, then a note type,
// then an archived note.
func (r *NoteResolver) ResolveItem(ref string) (itemType string, path string, err error) {
	if notePath, err := r.FindNote(ref); err == nil {
		return "note", notePath, nil
	}

	if deckPath, err := r.FindDeck(ref); err == nil {
		return "deck", deckPath, nil
	}

	if typePath, err := r.FindNoteType(ref); err == nil {
		return "notetype", typePath, nil
	}

	archived, err := r.SearchInArchive(ref)
	if err == nil && len(archived) > 0 {
		if len(archived) == 1 {
			return "archived", archived[0], nil
		}
		return "", "", fmt.Errorf("multiple archived notes found matching '%s'", ref)
	}

	return "", "", fmt.Errorf("no note, deck or note type found matching '%s'", ref)
}

// SearchInArchive searches for notes in the archive directory
func (r *NoteResolver) SearchInArchive(ref string) ([]string, error) {
	archived, err := files.ListArchivedNotes()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, name := range archived {
		if name == ref || name == ref+".yaml" || strings.HasPrefix(name, ref) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}
