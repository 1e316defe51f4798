package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
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
	checkCardNum int

	checkBold   = color.New(color.Bold)
	checkItalic = color.New(color.Italic)
)

// CheckOutput is the structured form of a typed-answer check
type CheckOutput struct {
	Card     string `json:"card" yaml:"card"`
	Typed    string `json:"typed" yaml:"typed"`
	Expected string `json:"expected" yaml:"expected"`
	Match    bool   `json:"match" yaml:"match"`
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <note> <answer>",
		Short: "Check a typed answer against a card",
		Long: `Check a typed answer against the expected answer of a card.

The answer is compared the same way a study session compares it: trimmed,
unicode-normalized, then matched character for character. A wrong answer
shows where the typed text diverges from the expected one.

Examples:
  # Check an answer against the first card
  typedeck check example-hola hola

  # Check against the second card of a cloze note
  typedeck check example-dias --card 2 viernes

  # Multi-word answers need no quoting
  typedeck check example-manana hasta manana`,
		Args: cobra.MinimumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runCheck,
	}

	cmd.Flags().IntVarP(&checkCardNum, "card", "c", 1, "Card number to check against (1-based)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	if checkCardNum < 1 || checkCardNum > len(cards) {
		return fmt.Errorf("note '%s' has %d cards, no card %d", note.ID, len(cards), checkCardNum)
	}
	card := cards[checkCardNum-1]

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	question, _, err := render.Card(card)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}

	typeResolver := typeans.NewResolver(i18n.ForLocale(settings.UI.Locale))
	st := typeResolver.Resolve(question, card.Ord, note, nt.Fields)

	if warning, ok := st.Warning(); ok {
		return fmt.Errorf("card %s cannot be checked: %s", card.ID(), warning)
	}
	correct, ok := st.Correct()
	if !ok {
		return fmt.Errorf("card %s does not expect a typed answer", card.ID())
	}

	typed := typeans.CleanAnswer(strings.Join(args[1:], " "))
	match := typed == correct

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		out := CheckOutput{Card: card.ID(), Typed: typed, Expected: correct, Match: match}
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Expected answer for %s is %s\n",
		checkBold.Sprint(card.ID()),
		checkItalic.Sprintf("%q", correct))

	if match {
		fmt.Fprint(cmd.OutOrStdout(), "✅ ")
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Correct."))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), "❌ ")
		fmt.Fprintln(cmd.OutOrStdout(), color.RedString("Wrong."))
		segs := diff.New().Compare(correct, typed)
		fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", cli.RenderDiffText(segs))
	}

	return nil
}
