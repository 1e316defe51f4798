package commands

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
	"github.com/ruoyu-qian/typedeck/pkg/tags"
)

// DeckStats summarizes the study state of one deck
type DeckStats struct {
	Deck    string `json:"deck" yaml:"deck"`
	Notes   int    `json:"notes" yaml:"notes"`
	Cards   int    `json:"cards" yaml:"cards"`
	Due     int    `json:"due" yaml:"due"`
	New     int    `json:"new" yaml:"new"`
	Studied int    `json:"studied" yaml:"studied"`
	// NextDue is the earliest upcoming review, empty when every studied
	// card is already due or the deck has none.
	NextDue string `json:"next_due,omitempty" yaml:"next_due,omitempty"`
}

// TagStats summarizes how often a tag is used
type TagStats struct {
	Tag      string `json:"tag" yaml:"tag"`
	Notes    int    `json:"notes" yaml:"notes"`
	Archived int    `json:"archived" yaml:"archived"`
	Total    int    `json:"total" yaml:"total"`
}

// StatsResult represents the output structure for the stats command
type StatsResult struct {
	Decks    []DeckStats `json:"decks" yaml:"decks"`
	Tags     []TagStats  `json:"tags,omitempty" yaml:"tags,omitempty"`
	TotalDue int         `json:"total_due" yaml:"total_due"`
	TotalNew int         `json:"total_new" yaml:"total_new"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [deck]",
		Short: "Show study statistics per deck",
		Long: `Show how much there is to study, per deck.

For each deck the count of notes and derived cards is shown together
with how many cards are due now, how many have never been studied, and
when the next review comes up. Without a deck argument every deck is
listed, followed by tag usage.

Examples:
  # Collection overview
  typedeck stats

  # One deck
  typedeck stats Spanish

  # As JSON
  typedeck stats -o json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := files.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	reviews, err := files.ListReviews()
	if err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}
	byID := make(map[string]*models.Review, len(reviews))
	for _, r := range reviews {
		byID[r.CardID] = r
	}

	decks := store.Decks
	if len(args) > 0 {
		deck, ok := store.Deck(args[0])
		if !ok {
			return fmt.Errorf("deck '%s' not found", args[0])
		}
		decks = []*models.Deck{deck}
	}

	now := time.Now()
	result := StatsResult{}

	for _, deck := range decks {
		cards, err := store.DeckCards(deck.Name)
		if err != nil {
			return err
		}

		ds := DeckStats{
			Deck:  deck.Name,
			Notes: len(store.DeckNotes(deck.Name)),
			Cards: len(cards),
		}

		var nextDue time.Time
		for _, card := range cards {
			r, ok := byID[card.ID()]
			if !ok {
				ds.New++
				continue
			}
			ds.Studied++
			if scheduler.IsDue(r, now) {
				ds.Due++
			} else if nextDue.IsZero() || r.Due.Before(nextDue) {
				nextDue = r.Due
			}
		}
		if !nextDue.IsZero() {
			ds.NextDue = nextDue.Format("2006-01-02 15:04")
		}

		result.Decks = append(result.Decks, ds)
		result.TotalDue += ds.Due
		result.TotalNew += ds.New
	}

	// Tag usage only belongs in the collection overview.
	if len(args) == 0 {
		usage, err := tags.GetAllTagUsage()
		if err == nil {
			names := make([]string, 0, len(usage))
			for name := range usage {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				result.Tags = append(result.Tags, TagStats{
					Tag:      name,
					Notes:    usage[name].NoteCount,
					Archived: usage[name].ArchivedCount,
					Total:    usage[name].TotalCount,
				})
			}
		}
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return printStatsTables(cmd, result)
	}
}

func printStatsTables(cmd *cobra.Command, result StatsResult) error {
	out := cmd.OutOrStdout()

	if len(result.Decks) == 0 {
		fmt.Fprintln(out, "No decks yet. Run 'typedeck examples' to install starter content.")
		return nil
	}

	fmt.Fprintln(out, "\nDECKS")
	table := cli.NewTableFormatter(out)
	table.Header("Deck", "Notes", "Cards", "Due", "New", "Next due")
	for _, ds := range result.Decks {
		nextDue := ds.NextDue
		if nextDue == "" {
			nextDue = "-"
		}
		table.Row(ds.Deck,
			fmt.Sprintf("%d", ds.Notes),
			fmt.Sprintf("%d", ds.Cards),
			fmt.Sprintf("%d", ds.Due),
			fmt.Sprintf("%d", ds.New),
			nextDue)
	}
	table.Flush()

	if len(result.Tags) > 0 {
		fmt.Fprintln(out, "\nTAGS")
		tagTable := cli.NewTableFormatter(out)
		tagTable.Header("Tag", "Notes", "Archived", "Total")
		for _, ts := range result.Tags {
			tagTable.Row(cli.ColorizeTag(ts.Tag),
				fmt.Sprintf("%d", ts.Notes),
				fmt.Sprintf("%d", ts.Archived),
				fmt.Sprintf("%d", ts.Total))
		}
		tagTable.Flush()
	}

	fmt.Fprintf(out, "\nTotal: %d due, %d new\n", result.TotalDue, result.TotalNew)

	return nil
}
