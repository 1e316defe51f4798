package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/pkg/files"
)

func TestAddCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "type is required",
			args:    []string{"--deck", "Spanish"},
			wantErr: "--type is required",
		},
		{
			name:    "deck is required",
			args:    []string{"--type", "Basic"},
			wantErr: "--deck is required",
		},
		{
			name:    "deck name with invalid character",
			args:    []string{"--type", "Basic", "--deck", "a/b"},
			wantErr: "invalid character",
		},
		{
			name:    "unknown note type",
			args:    []string{"--type", "Nonexistent", "--deck", "Spanish", "--field", "Front=x"},
			wantErr: "note type 'Nonexistent' not found",
		},
		{
			name:    "unknown field",
			args:    []string{"--type", "Basic", "--deck", "Spanish", "--field", "Bogus=x"},
			wantErr: `note type "Basic" has no field "Bogus"`,
		},
		{
			name:    "malformed field assignment",
			args:    []string{"--type", "Basic", "--deck", "Spanish", "--field", "Front"},
			wantErr: "invalid field assignment",
		},
		{
			name:    "empty field values cancel creation",
			args:    []string{"--type", "Basic", "--deck", "Spanish", "--field", "Front=", "--field", "Back="},
			wantErr: "no field content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)
			installStandardTypes(t)

			cmd := NewAddCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			names, listErr := files.ListNotes()
			require.NoError(t, listErr)
			assert.Empty(t, names, "failed add must not leave a note behind")
		})
	}
}

func TestAddCommandCreatesNote(t *testing.T) {
	setupProject(t)
	installStandardTypes(t)

	cmd := NewAddCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"--type", "Basic (type in the answer)",
		"--deck", "Spanish",
		"--field", "Front=Hello (informal greeting)",
		"--field", "Back=hola",
		"--tags", "Spanish, Greetings",
	})

	require.NoError(t, cmd.Execute())

	names, err := files.ListNotes()
	require.NoError(t, err)
	require.Len(t, names, 1)

	note, err := files.ReadNote(names[0])
	require.NoError(t, err)
	assert.Equal(t, "Basic (type in the answer)", note.Type)
	assert.Equal(t, "Spanish", note.Deck)
	assert.Equal(t, "Hello (informal greeting)", note.Fields["Front"])
	assert.Equal(t, "hola", note.Fields["Back"])
	assert.Equal(t, []string{"spanish", "greetings"}, note.Tags)
}

func TestAddCommandCreatesMissingDeck(t *testing.T) {
	setupProject(t)
	installStandardTypes(t)

	cmd := NewAddCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"--type", "Basic",
		"--deck", "Inbox",
		"--field", "Front=Q",
		"--field", "Back=A",
	})

	require.NoError(t, cmd.Execute())

	deck, err := files.ReadDeck("inbox.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Inbox", deck.Name)
}

func TestAddCommandExactTypeBeatsPrefix(t *testing.T) {
	setupProject(t)
	installStandardTypes(t)

	// "Basic" shares a prefix with "Basic (type in the answer)" but
	// resolves to the exact match.
	cmd := NewAddCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"--type", "Basic",
		"--deck", "Inbox",
		"--field", "Front=Q",
		"--field", "Back=A",
	})

	require.NoError(t, cmd.Execute())

	names, err := files.ListNotes()
	require.NoError(t, err)
	require.Len(t, names, 1)

	note, err := files.ReadNote(names[0])
	require.NoError(t, err)
	assert.Equal(t, "Basic", note.Type)
}

func TestAddCommandNoProject(t *testing.T) {
	setupEmptyDir(t)

	cmd := NewAddCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "Basic", "--deck", "Spanish"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .typedeck directory found")
}
