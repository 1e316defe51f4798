package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/search"
	"github.com/ruoyu-qian/typedeck/pkg/tags"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Type  string     `json:"type" yaml:"type"`
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single item in the list
type ListItem struct {
	Name       string   `json:"name" yaml:"name"`
	Filename   string   `json:"filename,omitempty" yaml:"filename,omitempty"`
	Type       string   `json:"type" yaml:"type"`
	Deck       string   `json:"deck,omitempty" yaml:"deck,omitempty"`
	Tags       []string `json:"tags" yaml:"tags"`
	Path       string   `json:"path,omitempty" yaml:"path,omitempty"`
	Notes      int      `json:"notes,omitempty" yaml:"notes,omitempty"`
	IsArchived bool     `json:"is_archived,omitempty" yaml:"is_archived,omitempty"`
}

var (
	listShowArchived bool
	listShowPaths    bool
	listDeckFilter   string
	listSearchQuery  string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [type]",
		Short: "List notes, decks, note types and tags",
		Long: `List the contents of the current project.

Types:
  notes   - List only notes
  decks   - List only decks
  types   - List only note types
  tags    - List only tags
  all     - List everything (default)

Examples:
  # List all items
  typedeck list

  # List only notes
  typedeck list notes

  # List the notes of one deck
  typedeck list notes --deck Spanish

  # Only notes matching a search query
  typedeck list notes --search "tag:spanish"

  # List decks with JSON output
  typedeck list decks -o json

  # Show only archived notes
  typedeck list notes --archived

  # Show file paths
  typedeck list --paths`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"notes", "decks", "types", "tags", "all"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runList,
	}

	cmd.Flags().BoolVarP(&listShowArchived, "archived", "a", false, "Show only archived notes")
	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")
	cmd.Flags().StringVar(&listDeckFilter, "deck", "", "Only notes of this deck")
	cmd.Flags().StringVar(&listSearchQuery, "search", "", "Only notes matching a search query")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	listType := "all"
	if len(args) > 0 {
		listType = strings.ToLower(args[0])
	}
	// Only notes can be searched.
	if listSearchQuery != "" && listType == "all" {
		listType = "notes"
	}

	outputFormat, _ := cmd.Flags().GetString("output")

	var result ListResult
	result.Type = listType

	if listType == "all" || listType == "decks" {
		decks, err := listDecks()
		if err != nil {
			return fmt.Errorf("failed to list decks: %w", err)
		}
		result.Items = append(result.Items, decks...)
	}

	if listType == "all" || listType == "types" {
		types, err := listNoteTypes()
		if err != nil {
			return fmt.Errorf("failed to list note types: %w", err)
		}
		result.Items = append(result.Items, types...)
	}

	if listType == "all" || listType == "notes" {
		notes, err := listNotes()
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		result.Items = append(result.Items, notes...)
	}

	if listType == "all" || listType == "tags" {
		tagItems, err := listTags()
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		result.Items = append(result.Items, tagItems...)
	}

	result.Count = len(result.Items)

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputListText(cmd, result)
	}
}

func listDecks() ([]ListItem, error) {
	var items []ListItem

	names, err := files.ListDecks()
	if err != nil {
		return nil, err
	}

	noteCounts := make(map[string]int)
	if noteNames, err := files.ListNotes(); err == nil {
		for _, name := range noteNames {
			note, err := files.ReadNote(name)
			if err != nil {
				continue
			}
			noteCounts[note.Deck]++
		}
	}

	for _, name := range names {
		deck, err := files.ReadDeck(name)
		if err != nil {
			cli.PrintWarning("Failed to load deck %s: %v", name, err)
			continue
		}

		item := ListItem{
			Name:     deck.Name,
			Filename: strings.TrimSuffix(name, ".yaml"),
			Type:     "deck",
			Notes:    noteCounts[deck.Name],
		}
		if listShowPaths {
			item.Path = filepath.Join(files.TypedeckDir, files.DecksDir, name)
		}
		items = append(items, item)
	}

	return items, nil
}

func listNoteTypes() ([]ListItem, error) {
	var items []ListItem

	names, err := files.ListNoteTypes()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		nt, err := files.ReadNoteType(name)
		if err != nil {
			cli.PrintWarning("Failed to load note type %s: %v", name, err)
			continue
		}

		kind := "notetype"
		if nt.Cloze {
			kind = "notetype (cloze)"
		}
		item := ListItem{
			Name:     nt.Name,
			Filename: strings.TrimSuffix(name, ".yaml"),
			Type:     kind,
			Notes:    len(nt.Fields),
		}
		if listShowPaths {
			item.Path = filepath.Join(files.TypedeckDir, files.NoteTypesDir, name)
		}
		items = append(items, item)
	}

	return items, nil
}

func listNotes() ([]ListItem, error) {
	var items []ListItem

	store, err := files.LoadStore()
	if err != nil {
		return nil, err
	}

	matched, err := searchMatchIDs(listSearchQuery)
	if err != nil {
		return nil, err
	}

	if listShowArchived {
		names, err := files.ListArchivedNotes()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			note, err := files.ReadArchivedNote(name)
			if err != nil {
				cli.PrintWarning("Failed to load archived note %s: %v", name, err)
				continue
			}
			if matched != nil && !matched[note.ID] {
				continue
			}
			if item, ok := noteListItem(note, store, true); ok {
				items = append(items, item)
			}
		}
		return items, nil
	}

	for _, note := range store.Notes {
		if matched != nil && !matched[note.ID] {
			continue
		}
		if item, ok := noteListItem(note, store, false); ok {
			items = append(items, item)
		}
	}

	return items, nil
}

// searchMatchIDs resolves --search into the set of matching note IDs.
// An empty query means no filter, returned as a nil map.
func searchMatchIDs(query string) (map[string]bool, error) {
	if query == "" {
		return nil, nil
	}

	api, err := search.NewSearchAPI()
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}
	results, err := api.Search(query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make(map[string]bool, len(results))
	for _, r := range results {
		ids[r.Item.ID] = true
	}
	return ids, nil
}

func noteListItem(note *models.Note, store *files.Store, isArchived bool) (ListItem, bool) {
	if listDeckFilter != "" && !strings.EqualFold(note.Deck, listDeckFilter) {
		return ListItem{}, false
	}

	item := ListItem{
		Name:       noteDisplayName(note, store),
		Filename:   note.ID,
		Type:       "note",
		Deck:       note.Deck,
		Tags:       note.Tags,
		IsArchived: isArchived,
	}
	if listShowPaths {
		dir := files.NotesDir
		if isArchived {
			dir = filepath.Join(files.ArchiveDir, files.NotesDir)
		}
		item.Path = filepath.Join(files.TypedeckDir, dir, note.ID+".yaml")
	}
	return item, true
}

// noteDisplayName condenses the first non-empty field into a label,
// walking fields in the note type's declared order.
func noteDisplayName(note *models.Note, store *files.Store) string {
	if nt, ok := store.NoteType(note.Type); ok {
		for _, fd := range nt.Fields {
			if v := strings.TrimSpace(note.Fields[fd.Name]); v != "" {
				return utils.Excerpt(v, 50)
			}
		}
	}
	keys := make([]string, 0, len(note.Fields))
	for k := range note.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(note.Fields[k]); v != "" {
			return utils.Excerpt(v, 50)
		}
	}
	return note.ID
}

func listTags() ([]ListItem, error) {
	var items []ListItem

	usage, err := tags.GetAllTagUsage()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		items = append(items, ListItem{
			Name:  name,
			Type:  "tag",
			Notes: usage[name].TotalCount,
		})
	}

	return items, nil
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if result.Count == 0 {
		cli.PrintInfo("No items found")
		return nil
	}

	groups := map[string][]ListItem{}
	for _, item := range result.Items {
		key := item.Type
		if strings.HasPrefix(key, "notetype") {
			key = "notetype"
		}
		groups[key] = append(groups[key], item)
	}

	if decks := groups["deck"]; len(decks) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nDECKS")
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		if listShowPaths {
			table.Header("Name", "Filename", "Notes", "Path")
		} else {
			table.Header("Name", "Filename", "Notes")
		}
		for _, d := range decks {
			if listShowPaths {
				table.Row(d.Name, d.Filename, fmt.Sprintf("%d", d.Notes), d.Path)
			} else {
				table.Row(d.Name, d.Filename, fmt.Sprintf("%d", d.Notes))
			}
		}
		table.Flush()
	}

	if types := groups["notetype"]; len(types) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNOTE TYPES")
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("Name", "Filename", "Fields", "Kind")
		for _, nt := range types {
			kind := "regular"
			if strings.Contains(nt.Type, "cloze") {
				kind = "cloze"
			}
			table.Row(nt.Name, nt.Filename, fmt.Sprintf("%d", nt.Notes), kind)
		}
		table.Flush()
	}

	if notes := groups["note"]; len(notes) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNOTES")
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		if listShowPaths {
			table.Header("Name", "ID", "Deck", "Tags", "Path")
		} else {
			table.Header("Name", "ID", "Deck", "Tags")
		}
		for _, n := range notes {
			tagsCol := strings.Join(n.Tags, ", ")
			if tagsCol == "" {
				tagsCol = "-"
			}
			name := n.Name
			if n.IsArchived {
				name = name + " [archived]"
			}
			if listShowPaths {
				table.Row(name, n.Filename, n.Deck, tagsCol, n.Path)
			} else {
				table.Row(name, n.Filename, n.Deck, tagsCol)
			}
		}
		table.Flush()
	}

	if tagItems := groups["tag"]; len(tagItems) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nTAGS")
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

		table := cli.NewTableFormatter(cmd.OutOrStdout())
		table.Header("Name", "Notes")
		for _, tg := range tagItems {
			table.Row(cli.ColorizeTag(tg.Name), fmt.Sprintf("%d", tg.Notes))
		}
		table.Flush()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d items\n", result.Count)

	return nil
}
