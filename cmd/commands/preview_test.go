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

func runPreviewCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewPreviewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestPreviewCommandTypedCard(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runPreviewCommand(t, "example-hola")
	require.NoError(t, err)

	assert.Contains(t, output, "Card: example-hola#0")
	assert.Contains(t, output, "Question:")
	assert.Contains(t, output, "Hello (informal greeting)")

	// Before anything is typed the question carries the dotted prompt and
	// the answer side shows the expected text as missing.
	assert.Contains(t, output, `class="typePrompt"`)
	assert.Contains(t, output, "........")
	assert.Contains(t, output, `<code id="typeans">`)
	assert.Contains(t, output, `class="typeMissed"`)
}

func TestPreviewCommandCorrectTypedAnswer(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runPreviewCommand(t, "example-hola", "--typed", "hola")
	require.NoError(t, err)

	assert.Contains(t, output, `class="typeGood"`)
	assert.Contains(t, output, `id="typecheckmark"`)
	assert.NotContains(t, output, `id="typearrow"`)
}

func TestPreviewCommandWrongTypedAnswer(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runPreviewCommand(t, "example-hola", "--typed", "ola")
	require.NoError(t, err)

	// Wrong answers render both lines joined by the arrow.
	assert.Contains(t, output, `id="typearrow"`)
	assert.Contains(t, output, `class="typeGood"`)
	assert.NotContains(t, output, `id="typecheckmark"`)
}

func TestPreviewCommandClozeCard(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runPreviewCommand(t, "example-dias", "--card", "2")
	require.NoError(t, err)

	assert.Contains(t, output, "Card: example-dias#1")
	assert.Contains(t, output, `class="cloze"`)
	assert.Contains(t, output, "lunes is Monday")
}

func TestPreviewCommandCardOutOfRange(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	_, err := runPreviewCommand(t, "example-dias", "--card", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note 'example-dias' has 2 cards, no card 5")
}

func TestPreviewCommandPage(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runPreviewCommand(t, "example-hola", "--page")
	require.NoError(t, err)

	assert.Contains(t, output, "<!DOCTYPE html>")
	assert.Contains(t, output, "<title>example-hola</title>")
	assert.Contains(t, output, "<h2>Card 1</h2>")
	assert.Contains(t, output, `class="typePrompt"`)
}

func TestPreviewCommandJSONOutput(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	cmd := NewPreviewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"example-hola", "--typed", "hola"})
	cmd.Flags().String("output", "text", "Output format")
	require.NoError(t, cmd.Flags().Set("output", "json"))

	require.NoError(t, cmd.Execute())

	var out PreviewOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "example-hola", out.Note)
	assert.Equal(t, "example-hola#0", out.Card)
	assert.True(t, out.Expecting)
	assert.Equal(t, "hola", out.Typed)
	assert.Contains(t, out.Answer, "typeGood")
}

func TestPreviewCommandPlainCard(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	note := models.NewNote("Basic", "Inbox")
	note.Fields = map[string]string{"Front": "Capital of France", "Back": "Paris"}
	require.NoError(t, files.WriteNote(note))

	cmd := NewPreviewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{note.ID})
	cmd.Flags().String("output", "text", "Output format")
	require.NoError(t, cmd.Flags().Set("output", "json"))

	require.NoError(t, cmd.Execute())

	var out PreviewOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.False(t, out.Expecting)
	assert.Contains(t, out.Question, "Capital of France")
	assert.Contains(t, out.Answer, "Paris")
	assert.NotContains(t, out.Answer, "typeans")
}

func TestPreviewCommandUnknownNote(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	_, err := runPreviewCommand(t, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note 'missing' not found")
}
