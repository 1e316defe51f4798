package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/examples"
	"github.com/ruoyu-qian/typedeck/pkg/files"
)

// setupProject switches into a fresh temporary project directory.
// Confirmation prompts are skipped and color is disabled so output
// assertions see plain text.
func setupProject(t *testing.T) {
	t.Helper()

	cli.SetGlobalFlags(false, true, true)

	dir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(oldDir) })

	require.NoError(t, files.InitProjectStructure())
}

// setupEmptyDir switches into a temporary directory without a project.
func setupEmptyDir(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(oldDir) })
}

// installStandardTypes installs only the standard note types, leaving
// the project without decks or notes.
func installStandardTypes(t *testing.T) {
	t.Helper()

	for _, set := range examples.GetExamples("standard") {
		for _, nt := range set.NoteTypes {
			_, err := examples.InstallNoteType(nt, true)
			require.NoError(t, err)
		}
	}
}

// installExampleContent fills the project with every starter set, the
// same content the examples command installs.
func installExampleContent(t *testing.T) {
	t.Helper()

	for _, set := range examples.GetExamples("all") {
		for _, nt := range set.NoteTypes {
			_, err := examples.InstallNoteType(nt, true)
			require.NoError(t, err)
		}
		for _, deck := range set.Decks {
			_, err := examples.InstallDeck(deck, true)
			require.NoError(t, err)
		}
		for _, note := range set.Notes {
			_, err := examples.InstallNote(note, true)
			require.NoError(t, err)
		}
	}
}
