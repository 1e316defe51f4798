package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

func runShowCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewShowCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestShowCommandNote(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "example-hola")
	require.NoError(t, err)

	assert.Contains(t, output, "Card 1")
	assert.Contains(t, output, "Hello (informal greeting)")
	assert.Contains(t, output, "[[type:Back]]")
	assert.Contains(t, output, "hola")
}

func TestShowCommandClozeNote(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "example-dias")
	require.NoError(t, err)

	// Two deletions, two cards.
	assert.Contains(t, output, "Card 1")
	assert.Contains(t, output, "Card 2")
	assert.Contains(t, output, "[...] is Monday and viernes is Friday")
	assert.Contains(t, output, "lunes is Monday and [...] is Friday")
	assert.Contains(t, output, "Days of the week are not capitalized in Spanish.")
}

func TestShowCommandNotePrefix(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "example-ho")
	require.NoError(t, err)
	assert.Contains(t, output, "Hello (informal greeting)")
}

func TestShowCommandAmbiguousReference(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	_, err := runShowCommand(t, "example-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note, deck or note type found matching 'example-'")
}

func TestShowCommandDeck(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "Spanish")
	require.NoError(t, err)

	assert.Contains(t, output, "Name: Spanish")
	assert.Contains(t, output, "Description: Starter Spanish vocabulary")
	assert.Contains(t, output, "New cards per day: 10")
	assert.Contains(t, output, "Notes: 5")
}

func TestShowCommandNoteType(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "Cloze (type in the answer)")
	require.NoError(t, err)

	assert.Contains(t, output, "Name: Cloze (type in the answer)")
	assert.Contains(t, output, "Kind: cloze")
	assert.Contains(t, output, "Text (Arial 20px)")
	assert.Contains(t, output, "Templates: 1")
	assert.Contains(t, output, "{{type:cloze:Text}}")
}

func TestShowCommandMetadata(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runShowCommand(t, "example-hola", "--metadata")
	require.NoError(t, err)

	assert.Contains(t, output, "ID: example-hola")
	assert.Contains(t, output, "Type: Basic (type in the answer)")
	assert.Contains(t, output, "Deck: Spanish")
	assert.Contains(t, output, "Tags: example, spanish, greetings")
}

func TestShowCommandArchivedNote(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	require.NoError(t, files.ArchiveNote("example-hola.yaml"))

	output, err := runShowCommand(t, "example-hola", "--metadata")
	require.NoError(t, err)

	assert.Contains(t, output, "Archived: yes")
	assert.Contains(t, output, "Hello (informal greeting)")
}

func TestShowCommandJSONOutput(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	cmd := NewShowCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"example-adios"})
	cmd.Flags().String("output", "text", "Output format")
	require.NoError(t, cmd.Flags().Set("output", "json"))

	require.NoError(t, cmd.Execute())

	var note models.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &note))
	assert.Equal(t, "example-adios", note.ID)
	assert.Equal(t, "adiós", note.Fields["Back"])
}

func TestShowCommandNotFound(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	_, err := runShowCommand(t, "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note, deck or note type found matching 'nonexistent'")
}
