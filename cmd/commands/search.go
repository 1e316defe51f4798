package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/search"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	Name     string   `json:"name" yaml:"name"`
	ID       string   `json:"id" yaml:"id"`
	Deck     string   `json:"deck" yaml:"deck"`
	Type     string   `json:"type" yaml:"type"`
	Tags     []string `json:"tags" yaml:"tags"`
	Archived bool     `json:"archived" yaml:"archived"`
	Excerpt  string   `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes",
		Long: `Search notes using a structured query syntax.

Query Syntax:
  tag:spanish           - Find notes with the "spanish" tag
  deck:Spanish          - Find notes in a deck
  type:"Basic"          - Find notes of a note type
  field:Front=hola      - Match one field's text
  content:"red planet"  - Search across all field text
  modified:<7d          - Notes touched in the last week
  status:archived       - Show archived notes

  Combine filters with AND, OR and NOT:
  tag:spanish AND deck:Spanish
  tag:vocab NOT tag:greetings

Examples:
  # Search for notes with a specific tag
  typedeck search "tag:spanish"

  # Search in field content
  typedeck search "content:goodbye"

  # Complex search
  typedeck search "deck:Spanish AND modified:<30d"`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	api, err := search.NewSearchAPI()
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	results, err := api.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	outputFormat, _ := cmd.Flags().GetString("output")

	searchResult := SearchResultOutput{
		Query:   query,
		Count:   len(results),
		Results: []SearchItemOutput{},
	}

	for _, r := range results {
		item := SearchItemOutput{
			Name:     r.Item.Name,
			ID:       r.Item.ID,
			Deck:     r.Item.Deck,
			Type:     r.Item.Type,
			Tags:     r.Item.Tags,
			Archived: r.Item.IsArchived,
		}

		if excerpts, ok := r.Highlights["content"]; ok && len(excerpts) > 0 {
			item.Excerpt = excerpts[0]
		}

		searchResult.Results = append(searchResult.Results, item)
	}

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, searchResult)
	default:
		return outputSearchText(cmd, searchResult)
	}
}

func outputSearchText(cmd *cobra.Command, result SearchResultOutput) error {
	if result.Count == 0 {
		cli.PrintInfo("No results found for query: %s", result.Query)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nSearch Results for: %s\n", result.Query)
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("Name", "Deck", "Type", "Tags")

	for _, item := range result.Results {
		tags := strings.Join(item.Tags, ", ")
		if tags == "" {
			tags = "-"
		}

		name := item.Name
		if item.Archived {
			name = name + " [archived]"
		}

		table.Row(name, item.Deck, item.Type, tags)
	}
	table.Flush()

	for _, item := range result.Results {
		if item.Excerpt != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", item.ID, cli.TruncateString(item.Excerpt, 70))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d results\n", result.Count)

	return nil
}
