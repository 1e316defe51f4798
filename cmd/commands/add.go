package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
	"github.com/ruoyu-qian/typedeck/pkg/tags"
)

var (
	addType   string
	addDeck   string
	addFields []string
	addTags   []string
)

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new note",
		Long: `Create a new note of the given type in the given deck.

Field values are passed with repeated --field flags. When no --field
flag is given the command opens your editor ($EDITOR) with a YAML
scaffold of the type's fields.

Examples:
  # Create a note from flags
  typedeck add --type "Basic (type in the answer)" --deck Spanish \
    --field Front=Hello --field Back=hola

  # Create a cloze note
  typedeck add --type "Cloze" --deck Spanish \
    --field "Text={{c1::lunes}} is Monday"

  # Create with tags
  typedeck add --type Basic --deck Spanish --field Front=Hi --field Back=hola \
    --tags spanish,greetings

  # Fill the fields in your editor
  typedeck add --type Basic --deck Spanish`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			if err := ctx.ValidateProject(); err != nil {
				return err
			}

			if addType == "" {
				return fmt.Errorf("--type is required")
			}
			if addDeck == "" {
				return fmt.Errorf("--deck is required")
			}
			return cli.ValidateDeckName(addDeck)
		},
		RunE: runAdd,
	}

	cmd.Flags().StringVarP(&addType, "type", "t", "", "Note type name")
	cmd.Flags().StringVarP(&addDeck, "deck", "d", "", "Deck name")
	cmd.Flags().StringArrayVarP(&addFields, "field", "f", nil, "Field value as Name=value (repeatable)")
	cmd.Flags().StringSliceVar(&addTags, "tags", []string{}, "Tags for the note (comma-separated)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	resolver := cli.NewNoteResolver(files.TypedeckDir)

	typePath, err := resolver.FindNoteType(addType)
	if err != nil {
		return err
	}
	nt, err := files.ReadNoteType(typePath)
	if err != nil {
		return fmt.Errorf("failed to load note type: %w", err)
	}

	if _, err := resolver.FindDeck(addDeck); err != nil {
		deck := &models.Deck{Name: addDeck}
		if err := files.WriteDeck(deck); err != nil {
			return fmt.Errorf("failed to create deck %q: %w", addDeck, err)
		}
		cli.PrintInfo("Created deck: %s", addDeck)
	}

	var fieldValues map[string]string
	if len(addFields) > 0 {
		fieldValues, err = fieldsFromFlags(addFields, nt)
	} else {
		fieldValues, err = fieldsFromEditor(nt)
	}
	if err != nil {
		return err
	}

	empty := true
	for _, v := range fieldValues {
		if strings.TrimSpace(v) != "" {
			empty = false
			break
		}
	}
	if empty {
		return fmt.Errorf("note has no field content, creation cancelled")
	}

	note := models.NewNote(nt.Name, addDeck)
	note.Fields = fieldValues

	if len(addTags) > 0 {
		registry, err := tags.NewRegistry()
		if err != nil {
			return fmt.Errorf("failed to load tag registry: %w", err)
		}
		for _, tag := range addTags {
			normalized := models.NormalizeTagName(tag)
			if _, err := registry.GetOrCreateTag(normalized); err != nil {
				return fmt.Errorf("failed to register tag %q: %w", tag, err)
			}
			note.Tags = append(note.Tags, normalized)
		}
	}

	if err := files.WriteNote(note); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	cli.PrintSuccess("Created note: %s", note.ID)
	cli.PrintInfo("Type: %s, deck: %s", nt.Name, addDeck)
	if len(note.Tags) > 0 {
		cli.PrintInfo("Tags: %s", strings.Join(note.Tags, ", "))
	}

	return nil
}

func fieldsFromFlags(flags []string, nt *models.NoteType) (map[string]string, error) {
	values := make(map[string]string, len(flags))
	for _, f := range flags {
		name, value, err := cli.ParseFieldAssignment(f)
		if err != nil {
			return nil, err
		}
		if _, ok := nt.Field(name); !ok {
			return nil, fmt.Errorf("note type %q has no field %q", nt.Name, name)
		}
		values[name] = value
	}
	return values, nil
}

func fieldsFromEditor(nt *models.NoteType) (map[string]string, error) {
	scaffold := noteScaffold(nt)

	launcher := cli.NewEditorLauncher()
	cli.PrintInfo("Opening editor to fill in the note fields...")
	tmpPath, err := launcher.OpenTempFile("note_*.yaml", scaffold)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	content, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited content: %w", err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("failed to parse edited fields: %w", err)
	}

	for name := range values {
		if _, ok := nt.Field(name); !ok {
			return nil, fmt.Errorf("note type %q has no field %q", nt.Name, name)
		}
	}
	return values, nil
}

func noteScaffold(nt *models.NoteType) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Fields of %q. Fill in the values and save.\n", nt.Name))
	for _, fd := range nt.Fields {
		sb.WriteString(fmt.Sprintf("%s: \"\"\n", fd.Name))
	}
	return sb.String()
}
