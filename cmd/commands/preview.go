package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/diff"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/i18n"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/render"
	"github.com/ruoyu-qian/typedeck/pkg/typeans"
)

var (
	previewCard  int
	previewTyped string
	previewPage  bool
	previewCopy  bool
)

// PreviewOutput is the structured form of a card preview
type PreviewOutput struct {
	Note      string `json:"note" yaml:"note"`
	Card      string `json:"card" yaml:"card"`
	Question  string `json:"question" yaml:"question"`
	Answer    string `json:"answer" yaml:"answer"`
	Expecting bool   `json:"expecting_answer" yaml:"expecting_answer"`
	Typed     string `json:"typed,omitempty" yaml:"typed,omitempty"`
}

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <note>",
		Short: "Preview the rendered HTML of a card",
		Long: `Preview the rendered HTML of one card of a note.

The card is rendered exactly as a study session would show it, including
the typed-answer placeholder substitution. Pass --typed to see the
comparison markup a given answer would produce on the answer side.

Examples:
  # Preview the first card of a note
  typedeck preview example-hola

  # Preview the second card
  typedeck preview example-dias --card 2

  # See the comparison markup for a typed answer
  typedeck preview example-hola --typed "ola"

  # Copy a standalone HTML page to the clipboard
  typedeck preview example-hola --copy`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runPreview,
	}

	cmd.Flags().IntVarP(&previewCard, "card", "c", 1, "Card number to preview (1-based)")
	cmd.Flags().StringVarP(&previewTyped, "typed", "t", "", "Render the answer side as if this was typed")
	cmd.Flags().BoolVar(&previewPage, "page", false, "Print a standalone HTML page instead of fragments")
	cmd.Flags().BoolVar(&previewCopy, "copy", false, "Copy the standalone HTML page to the clipboard")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	resolver := cli.NewNoteResolver(files.TypedeckDir)

	notePath, err := resolver.FindNote(args[0])
	if err != nil {
		return err
	}

	note, err := files.ReadNote(notePath)
	if err != nil {
		return fmt.Errorf("failed to read note: %w", err)
	}

	nt, err := files.ReadNoteType(files.Slugify(note.Type) + ".yaml")
	if err != nil {
		return fmt.Errorf("failed to read note type '%s': %w", note.Type, err)
	}

	cards := models.Cards(note, nt)
	if len(cards) == 0 {
		return fmt.Errorf("note '%s' produces no cards", note.ID)
	}
	if previewCard < 1 || previewCard > len(cards) {
		return fmt.Errorf("note '%s' has %d cards, no card %d", note.ID, len(cards), previewCard)
	}
	card := cards[previewCard-1]

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	question, answer, err := render.Card(card)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}

	cfg := typeans.Config{
		UseInputTag:            settings.TypeAnswer.UseInputTag,
		SuppressCodeFormatting: settings.TypeAnswer.NoCodeFormatting,
		AutoFocus:              settings.TypeAnswer.AutoFocus,
	}
	typeResolver := typeans.NewResolver(i18n.ForLocale(settings.UI.Locale))
	typeRenderer := typeans.NewRenderer(diff.New())

	st := typeResolver.Resolve(question, card.Ord, note, nt.Fields)
	question = st.FilterQuestion(question, cfg)
	typed := typeans.CleanAnswer(previewTyped)
	if correct, ok := st.Correct(); ok {
		answer = typeRenderer.FilterAnswer(answer, typed, correct, cfg)
	} else {
		answer = typeans.StripPlaceholders(answer)
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		out := PreviewOutput{
			Note:      note.ID,
			Card:      card.ID(),
			Question:  question,
			Answer:    answer,
			Expecting: st.Expecting(),
			Typed:     typed,
		}
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, out)
	}

	if previewPage || previewCopy {
		page := render.Page(note.ID, []render.PageCard{{
			Title:    fmt.Sprintf("Card %d", previewCard),
			Question: question,
			Answer:   answer,
			Markdown: nt.Markdown,
		}})

		if previewCopy {
			if err := clipboard.WriteAll(page); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			cli.PrintSuccess("Card %s copied to clipboard", card.ID())
			cli.PrintInfo("Page size: %s", cli.FormatBytes(int64(len(page))))
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), page)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Card: %s\n", card.ID())
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 40))
	fmt.Fprintln(cmd.OutOrStdout(), "Question:")
	fmt.Fprintln(cmd.OutOrStdout(), question)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "Answer:")
	fmt.Fprintln(cmd.OutOrStdout(), answer)

	return nil
}
