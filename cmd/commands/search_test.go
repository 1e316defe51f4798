package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/pkg/files"
)

func runSearchCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewSearchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		contains []string
		excludes []string
	}{
		{
			name:  "tag search",
			query: "tag:greetings",
			contains: []string{
				"Search Results for: tag:greetings",
				"Hello (informal greeting)",
				"Goodbye",
				"Total: 2 results",
			},
			excludes: []string{
				"Thank you",
			},
		},
		{
			name:  "content search shows excerpt",
			query: "content:goodbye",
			contains: []string{
				"Goodbye",
				"example-adios:",
				"Total: 1 results",
			},
		},
		{
			name:  "field search",
			query: "field:Back=hola",
			contains: []string{
				"Hello (informal greeting)",
				"Total: 1 results",
			},
		},
		{
			name:  "and combination",
			query: "tag:spanish AND tag:time",
			contains: []string{
				"Tomorrow",
				"Total: 2 results",
			},
			excludes: []string{
				"Goodbye",
			},
		},
		{
			name:  "not excludes matching notes",
			query: "tag:spanish NOT tag:greetings",
			contains: []string{
				"Thank you",
				"Tomorrow",
				"Total: 3 results",
			},
			excludes: []string{
				"Goodbye",
			},
		},
		{
			name:  "deck prefix search",
			query: "deck:span",
			contains: []string{
				"Total: 5 results",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)
			installExampleContent(t)

			output, err := runSearchCommand(t, tt.query)
			require.NoError(t, err)

			for _, expected := range tt.contains {
				assert.Contains(t, output, expected)
			}
			for _, excluded := range tt.excludes {
				assert.NotContains(t, output, excluded)
			}
		})
	}
}

func TestSearchCommandArchivedStatus(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	require.NoError(t, files.ArchiveNote("example-hola.yaml"))

	output, err := runSearchCommand(t, "status:archived")
	require.NoError(t, err)

	assert.Contains(t, output, "Hello (informal greeting) [archived]")
	assert.Contains(t, output, "Total: 1 results")
	assert.NotContains(t, output, "Goodbye")
}

func TestSearchCommandNoResults(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runSearchCommand(t, "tag:nonexistent")
	require.NoError(t, err)

	// The friendly hint goes to the terminal; the command buffer stays
	// free of result scaffolding.
	assert.NotContains(t, output, "Search Results")
	assert.NotContains(t, output, "Total:")
}

func TestSearchCommandJSONOutput(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	cmd := NewSearchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"content:goodbye"})
	cmd.Flags().String("output", "text", "Output format")
	require.NoError(t, cmd.Flags().Set("output", "json"))

	require.NoError(t, cmd.Execute())

	var result SearchResultOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "content:goodbye", result.Query)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "example-adios", result.Results[0].ID)
	assert.Equal(t, "Spanish", result.Results[0].Deck)
	assert.NotEmpty(t, result.Results[0].Excerpt)
}

func TestSearchCommandNoProject(t *testing.T) {
	setupEmptyDir(t)

	_, err := runSearchCommand(t, "tag:spanish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .typedeck directory found")
}
