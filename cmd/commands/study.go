package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/tui"
)

// NewStudyCommand creates the study command
func NewStudyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study [deck]",
		Short: "Start an interactive study session",
		Long: `Start an interactive study session in the terminal.

Without a deck argument the deck list opens first. With one, the session
starts right away on that deck: due cards come first, then new cards up
to the daily cap.

Cards that expect a typed answer show an input field; after submitting,
the comparison against the expected answer is displayed character by
character. Rate each card 1-4 (again, hard, good, easy) to schedule the
next review.

Examples:
  # Pick a deck interactively
  typedeck study

  # Study one deck directly
  typedeck study Spanish`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runStudy,
	}

	return cmd
}

func runStudy(cmd *cobra.Command, args []string) error {
	var app *tui.App
	if len(args) > 0 {
		store, err := files.LoadStore()
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		if _, ok := store.Deck(args[0]); !ok {
			return fmt.Errorf("deck '%s' not found", args[0])
		}
		app = tui.NewAppForDeck(args[0])
	} else {
		app = tui.NewApp()
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	return nil
}
