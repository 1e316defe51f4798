package commands

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
)

func runStatsCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewStatsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestStatsCommandFreshCollection(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runStatsCommand(t)
	require.NoError(t, err)

	assert.Contains(t, output, "DECKS")
	assert.Contains(t, output, "Spanish")
	assert.Contains(t, output, "TAGS")
	assert.Contains(t, output, "greetings")

	// Nothing studied yet: every card is new.
	assert.Contains(t, output, "Total: 0 due, 6 new")
}

func TestStatsCommandCountsDueCards(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	sched := scheduler.New()
	review := scheduler.NewState("example-hola#0")
	review = sched.Rate(review, scheduler.Good, time.Now())
	review.Due = time.Now().Add(-time.Hour)
	require.NoError(t, files.WriteReview(review))

	output, err := runStatsCommand(t)
	require.NoError(t, err)

	assert.Contains(t, output, "Total: 1 due, 5 new")
}

func TestStatsCommandShowsNextDue(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	sched := scheduler.New()
	review := scheduler.NewState("example-hola#0")
	review = sched.Rate(review, scheduler.Good, time.Now())
	review.Due = time.Now().Add(48 * time.Hour)
	require.NoError(t, files.WriteReview(review))

	output, err := runStatsCommand(t)
	require.NoError(t, err)

	assert.Contains(t, output, "Total: 0 due, 5 new")
	assert.Contains(t, output, review.Due.Format("2006-01-02 15:04"))
}

func TestStatsCommandSingleDeck(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	output, err := runStatsCommand(t, "Spanish")
	require.NoError(t, err)

	assert.Contains(t, output, "Spanish")
	assert.NotContains(t, output, "TAGS")
}

func TestStatsCommandUnknownDeck(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	_, err := runStatsCommand(t, "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck 'Nowhere' not found")
}

func TestStatsCommandEmptyProject(t *testing.T) {
	setupProject(t)

	output, err := runStatsCommand(t)
	require.NoError(t, err)
	assert.Contains(t, output, "No decks yet")
}

func TestStatsCommandJSONOutput(t *testing.T) {
	setupProject(t)
	installExampleContent(t)

	cmd := NewStatsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	cmd.Flags().String("output", "text", "Output format")
	require.NoError(t, cmd.Flags().Set("output", "json"))

	require.NoError(t, cmd.Execute())

	var result StatsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result.Decks, 1)
	assert.Equal(t, "Spanish", result.Decks[0].Deck)
	assert.Equal(t, 5, result.Decks[0].Notes)
	assert.Equal(t, 6, result.Decks[0].Cards)
	assert.Equal(t, 6, result.Decks[0].New)
	assert.Equal(t, 6, result.TotalNew)
	assert.NotEmpty(t, result.Tags)
}
