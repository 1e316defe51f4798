package commands

import (
	"fmt"
	"os"

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
	exportToFile string
)

// ExportCard is one rendered card in structured export output.
type ExportCard struct {
	ID       string `json:"id" yaml:"id"`
	Deck     string `json:"deck" yaml:"deck"`
	Title    string `json:"title" yaml:"title"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// ExportOutput is the structured form of an export
type ExportOutput struct {
	Title string       `json:"title" yaml:"title"`
	Count int          `json:"count" yaml:"count"`
	Cards []ExportCard `json:"cards" yaml:"cards"`
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [deck]",
		Short: "Export rendered cards as a static HTML study sheet",
		Long: `Export rendered cards as a standalone HTML page.

Without a deck argument every deck is exported; with one, only that deck.
Cards that expect a typed answer are rendered the way they look before
anything was typed, with the dotted prompt on the question side and the
expected answer highlighted on the answer side.

The page is written to the filename configured under export settings.
Pass --file to choose another destination, or '--file -' for stdout.

Examples:
  # Export everything to the configured filename
  typedeck export

  # Export one deck
  typedeck export Spanish

  # Export to a chosen file
  typedeck export Spanish --file spanish.html

  # Export rendered card data as JSON
  typedeck export Spanish -o json --file -`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to this file ('-' for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	store, err := files.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	title := settings.Export.PageTitle
	var decks []*models.Deck
	if len(args) > 0 {
		deck, ok := store.Deck(args[0])
		if !ok {
			return fmt.Errorf("deck '%s' not found", args[0])
		}
		decks = []*models.Deck{deck}
		title = deck.Name
	} else {
		decks = store.Decks
	}

	// A static page has no input control, so the dotted prompt form is
	// used regardless of the input tag setting.
	cfg := typeans.Config{SuppressCodeFormatting: settings.TypeAnswer.NoCodeFormatting}
	resolver := typeans.NewResolver(i18n.ForLocale(settings.UI.Locale))
	renderer := typeans.NewRenderer(diff.New())

	var pageCards []render.PageCard
	var exportCards []ExportCard

	for _, deck := range decks {
		cards, err := store.DeckCards(deck.Name)
		if err != nil {
			return err
		}

		for _, card := range cards {
			question, answer, err := render.Card(card)
			if err != nil {
				return fmt.Errorf("failed to render card %s: %w", card.ID(), err)
			}

			st := resolver.Resolve(question, card.Ord, card.Note, card.Type.Fields)
			if correct, ok := st.Correct(); ok {
				question = st.FilterQuestion(question, cfg)
				answer = renderer.FilterAnswer(answer, "", correct, cfg)
			} else if _, ok := st.Warning(); ok {
				question = st.FilterQuestion(question, cfg)
				answer = typeans.StripPlaceholders(answer)
			} else {
				question = typeans.StripPlaceholders(question)
				answer = typeans.StripPlaceholders(answer)
			}

			cardTitle := exportCardTitle(card, len(decks) > 1)

			pageCards = append(pageCards, render.PageCard{
				Title:    cardTitle,
				Question: question,
				Answer:   answer,
				Markdown: card.Type.Markdown,
			})
			exportCards = append(exportCards, ExportCard{
				ID:       card.ID(),
				Deck:     deck.Name,
				Title:    cardTitle,
				Question: question,
				Answer:   answer,
			})
		}
	}

	outputFormat, _ := cmd.Flags().GetString("output")

	destination := exportToFile
	if destination == "" {
		destination = settings.Export.DefaultFilename
	}

	if outputFormat == "json" || outputFormat == "yaml" {
		exportData := ExportOutput{Title: title, Count: len(exportCards), Cards: exportCards}
		if destination == "-" {
			return cli.OutputResults(cmd.OutOrStdout(), outputFormat, exportData)
		}
		file, err := os.Create(destination)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer file.Close()
		if err := cli.OutputResults(file, outputFormat, exportData); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		cli.PrintSuccess("Exported %d cards to: %s (%s format)", len(exportCards), destination, outputFormat)
		return nil
	}

	page := render.Page(title, pageCards)

	if destination == "-" {
		fmt.Fprint(cmd.OutOrStdout(), page)
		return nil
	}

	if err := os.WriteFile(destination, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	cli.PrintSuccess("Exported %d cards to: %s", len(exportCards), destination)
	cli.PrintInfo("Page size: %s", cli.FormatBytes(int64(len(page))))

	return nil
}

// exportCardTitle labels a card on the page. Deck names are prefixed
// only when the page mixes decks.
func exportCardTitle(card *models.Card, withDeck bool) string {
	var title string
	if card.Type.Cloze {
		title = fmt.Sprintf("Card %d", card.Ord+1)
	} else if tmpl, ok := card.Template(); ok && tmpl.Name != "" {
		title = tmpl.Name
	} else {
		title = fmt.Sprintf("Card %d", card.Ord+1)
	}
	if withDeck {
		title = card.Note.Deck + ": " + title
	}
	return title
}
