package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

func runCreateCommand(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewCreateCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCreateCommandBasicType(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "Spanish Vocab"))

	nt, err := files.ReadNoteType("spanish-vocab.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Spanish Vocab", nt.Name)
	assert.False(t, nt.Cloze)
	require.Len(t, nt.Fields, 2)
	assert.Equal(t, models.FieldDef{Name: "Front", Font: "Arial", Size: 20}, nt.Fields[0])
	assert.Equal(t, models.FieldDef{Name: "Back", Font: "Arial", Size: 20}, nt.Fields[1])

	require.Len(t, nt.Templates, 1)
	assert.Equal(t, "Card 1", nt.Templates[0].Name)
	assert.Equal(t, "{{Front}}", nt.Templates[0].Question)
	assert.Equal(t, "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}", nt.Templates[0].Answer)
}

func TestCreateCommandTypedAnswer(t *testing.T) {
	setupProject(t)

	// The field name matches case-insensitively.
	require.NoError(t, runCreateCommand(t, "Typing Drill", "--typed", "back"))

	nt, err := files.ReadNoteType("typing-drill.yaml")
	require.NoError(t, err)

	assert.Equal(t, "{{Front}}\n\n{{type:Back}}", nt.Templates[0].Question)
	assert.Equal(t, "{{Front}}\n\n<hr id=answer>\n\n{{type:Back}}", nt.Templates[0].Answer)
}

func TestCreateCommandCustomFields(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "Kanji",
		"--field", "Character",
		"--field", "Reading",
		"--field", "Meaning",
		"--typed", "Reading"))

	nt, err := files.ReadNoteType("kanji.yaml")
	require.NoError(t, err)

	require.Len(t, nt.Fields, 3)
	assert.Equal(t, "Character", nt.Fields[0].Name)
	assert.Equal(t, "Reading", nt.Fields[1].Name)
	assert.Equal(t, "Meaning", nt.Fields[2].Name)
	assert.Equal(t, "{{Character}}\n\n{{type:Reading}}", nt.Templates[0].Question)
}

func TestCreateCommandClozeType(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "My Cloze", "--cloze"))

	nt, err := files.ReadNoteType("my-cloze.yaml")
	require.NoError(t, err)

	assert.True(t, nt.Cloze)
	require.Len(t, nt.Fields, 2)
	assert.Equal(t, "Text", nt.Fields[0].Name)
	assert.Equal(t, "Back Extra", nt.Fields[1].Name)

	require.Len(t, nt.Templates, 1)
	assert.Equal(t, "Cloze", nt.Templates[0].Name)
	assert.Equal(t, "{{cloze:Text}}", nt.Templates[0].Question)
	assert.Equal(t, "{{cloze:Text}}<br>\n{{Back Extra}}", nt.Templates[0].Answer)
}

func TestCreateCommandClozeTyped(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "Cloze Drill", "--cloze", "--typed", "Text"))

	nt, err := files.ReadNoteType("cloze-drill.yaml")
	require.NoError(t, err)

	assert.Equal(t, "{{cloze:Text}}\n\n{{type:cloze:Text}}", nt.Templates[0].Question)
	assert.Equal(t, "{{cloze:Text}}<br>\n{{type:cloze:Text}}<br>\n{{Back Extra}}", nt.Templates[0].Answer)
}

func TestCreateCommandClozeSingleField(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "Bare Cloze", "--cloze", "--field", "Sentence"))

	nt, err := files.ReadNoteType("bare-cloze.yaml")
	require.NoError(t, err)

	require.Len(t, nt.Fields, 1)
	assert.Equal(t, "{{cloze:Sentence}}", nt.Templates[0].Question)
	assert.Equal(t, "{{cloze:Sentence}}", nt.Templates[0].Answer)
}

func TestCreateCommandMarkdownFlag(t *testing.T) {
	setupProject(t)

	require.NoError(t, runCreateCommand(t, "Notes", "--markdown"))

	nt, err := files.ReadNoteType("notes.yaml")
	require.NoError(t, err)
	assert.True(t, nt.Markdown)
}

func TestCreateCommandNeedsTwoFields(t *testing.T) {
	setupProject(t)

	err := runCreateCommand(t, "Thin", "--field", "Front")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs at least two fields")
}

func TestCreateCommandDuplicateField(t *testing.T) {
	setupProject(t)

	err := runCreateCommand(t, "Doubled", "--field", "Front", "--field", "front")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate field "front"`)
}

func TestCreateCommandTypedUnknownField(t *testing.T) {
	setupProject(t)

	err := runCreateCommand(t, "Typing Drill", "--typed", "Bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `--typed names unknown field "Bogus"`)
	assert.Contains(t, err.Error(), "Front, Back")
}

func TestCreateCommandClozeTypedWrongField(t *testing.T) {
	setupProject(t)

	err := runCreateCommand(t, "Cloze Drill", "--cloze", "--typed", "Back Extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `--typed must name "Text"`)
}

func TestCreateCommandExistingName(t *testing.T) {
	setupProject(t)
	installStandardTypes(t)

	err := runCreateCommand(t, "Basic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note type 'Basic' already exists")
}

func TestCreateCommandInvalidName(t *testing.T) {
	setupProject(t)

	err := runCreateCommand(t, "a/b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}
