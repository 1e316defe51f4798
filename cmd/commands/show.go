package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/render"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

var (
	showMetadata bool
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <note|deck|notetype>",
		Short: "Display a note, deck or note type",
		Long: `Display the content of a note, deck or note type.

For notes, shows every card the note produces with both sides rendered.
For decks and note types, shows the definition.

The item can be specified by name, ID or ID prefix.

Examples:
  # Show a note (full or truncated ID)
  typedeck show example-hola
  typedeck show 3f2a

  # Show with metadata
  typedeck show example-hola --metadata

  # Show a deck
  typedeck show Spanish

  # Output as JSON
  typedeck show example-hola -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runShow,
	}

	cmd.Flags().BoolVarP(&showMetadata, "metadata", "m", false, "Show item metadata")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	itemRef := args[0]

	outputFormat, _ := cmd.Flags().GetString("output")

	resolver := cli.NewNoteResolver(files.TypedeckDir)
	itemType, path, err := resolver.ResolveItem(itemRef)
	if err != nil {
		return err
	}

	switch itemType {
	case "note":
		note, err := files.ReadNote(path)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
		return showNote(cmd, note, outputFormat, false)
	case "archived":
		note, err := files.ReadArchivedNote(path)
		if err != nil {
			return fmt.Errorf("failed to load archived note: %w", err)
		}
		return showNote(cmd, note, outputFormat, true)
	case "deck":
		deck, err := files.ReadDeck(path)
		if err != nil {
			return fmt.Errorf("failed to load deck: %w", err)
		}
		return showDeck(cmd, deck, outputFormat)
	case "notetype":
		nt, err := files.ReadNoteType(path)
		if err != nil {
			return fmt.Errorf("failed to load note type: %w", err)
		}
		return showNoteType(cmd, nt, outputFormat)
	default:
		return fmt.Errorf("item '%s' not found", itemRef)
	}
}

func showNote(cmd *cobra.Command, note *models.Note, outputFormat string, isArchived bool) error {
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, note)
	}

	nt, err := files.ReadNoteType(files.Slugify(note.Type) + ".yaml")
	if err != nil {
		return fmt.Errorf("failed to load note type %q: %w", note.Type, err)
	}

	if showMetadata {
		fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", note.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Type: %s\n", note.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "Deck: %s\n", note.Deck)
		if len(note.Tags) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Tags: %s\n", strings.Join(note.Tags, ", "))
		}
		if isArchived {
			fmt.Fprintln(cmd.OutOrStdout(), "Archived: yes")
		}
		if !note.Modified.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "Modified: %s\n", note.Modified.Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))
	}

	cards := models.Cards(note, nt)
	if len(cards) == 0 {
		cli.PrintInfo("Note produces no cards")
		return nil
	}

	for _, card := range cards {
		question, answer, err := render.Card(card)
		if err != nil {
			return fmt.Errorf("failed to render card %s: %w", card.ID(), err)
		}

		title := fmt.Sprintf("Card %d", card.Ord+1)
		if t, ok := card.Template(); ok && !nt.Cloze {
			title = t.Name
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", title)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 40))
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(utils.StripHTML(question)))
		fmt.Fprintln(cmd.OutOrStdout(), "  ---")
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(utils.StripHTML(answer)))
	}

	return nil
}

func showDeck(cmd *cobra.Command, deck *models.Deck, outputFormat string) error {
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, deck)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", deck.Name)
	if deck.Description != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Description: %s\n", deck.Description)
	}
	if deck.NewPerDay > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "New cards per day: %d\n", deck.NewPerDay)
	}

	store, err := files.LoadStore()
	if err != nil {
		return err
	}
	notes := store.DeckNotes(deck.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Notes: %d\n", len(notes))

	return nil
}

func showNoteType(cmd *cobra.Command, nt *models.NoteType, outputFormat string) error {
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, nt)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", nt.Name)
	if nt.Cloze {
		fmt.Fprintln(cmd.OutOrStdout(), "Kind: cloze")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Kind: regular")
	}

	fnames := make([]string, 0, len(nt.Fields))
	for _, fd := range nt.Fields {
		fieldDesc := fd.Name
		if fd.Font != "" {
			fieldDesc = fmt.Sprintf("%s (%s %dpx)", fd.Name, fd.Font, fd.Size)
		}
		fnames = append(fnames, fieldDesc)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fields: %s\n", strings.Join(fnames, ", "))

	fmt.Fprintf(cmd.OutOrStdout(), "Templates: %d\n", len(nt.Templates))
	for _, tmpl := range nt.Templates {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", tmpl.Name)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 40))
		fmt.Fprintln(cmd.OutOrStdout(), tmpl.Question)
		fmt.Fprintln(cmd.OutOrStdout(), "  ---")
		fmt.Fprintln(cmd.OutOrStdout(), tmpl.Answer)
	}

	return nil
}
