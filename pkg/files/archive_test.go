package files

import (
	"os"
	"testing"

	"github.com/ruoyu-qian/typedeck/pkg/models"
)

func TestArchiveNote(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	note := models.NewNote("Basic", "Spanish")
	note.Fields["Front"] = "hola"
	if err := WriteNote(note); err != nil {
		t.Fatalf("WriteNote failed: %v", err)
	}
	path := note.ID + ".yaml"

	if err := ArchiveNote(path); err != nil {
		t.Fatalf("ArchiveNote failed: %v", err)
	}

	if _, err := ReadNote(path); err == nil {
		t.Error("note still readable from active set after archiving")
	}

	archived, err := ListArchivedNotes()
	if err != nil {
		t.Fatalf("ListArchivedNotes failed: %v", err)
	}
	if len(archived) != 1 || archived[0] != path {
		t.Errorf("ListArchivedNotes = %v, want [%s]", archived, path)
	}

	read, err := ReadArchivedNote(path)
	if err != nil {
		t.Fatalf("ReadArchivedNote failed: %v", err)
	}
	if read.Fields["Front"] != "hola" {
		t.Errorf("archived note lost content: %+v", read.Fields)
	}
}

func TestUnarchiveNote(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	note := models.NewNote("Basic", "Spanish")
	if err := WriteNote(note); err != nil {
		t.Fatalf("WriteNote failed: %v", err)
	}
	path := note.ID + ".yaml"

	if err := ArchiveNote(path); err != nil {
		t.Fatalf("ArchiveNote failed: %v", err)
	}
	if err := UnarchiveNote(path); err != nil {
		t.Fatalf("UnarchiveNote failed: %v", err)
	}

	if _, err := ReadNote(path); err != nil {
		t.Errorf("note not readable after unarchive: %v", err)
	}
	if archived, _ := ListArchivedNotes(); len(archived) != 0 {
		t.Errorf("archive still holds %d notes", len(archived))
	}
}

func TestArchiveNoteInvalidPath(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	if err := ArchiveNote("../escape.yaml"); err == nil {
		t.Error("Expected error for a path escaping the project")
	}
	if err := ArchiveNote(""); err == nil {
		t.Error("Expected error for an empty path")
	}
	if err := ArchiveNote("missing.yaml"); err == nil {
		t.Error("Expected error for a missing note")
	}
}
