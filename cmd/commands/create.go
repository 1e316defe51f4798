package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

var (
	createFields   []string
	createTyped    string
	createCloze    bool
	createMarkdown bool
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new note type",
		Long: `Create a new note type.

The first field fills the question side and the second the answer side,
the way the stock Basic type works. Pass --typed with a field name to
put a typing box on the card that checks your answer against that
field. Pass --cloze for cloze deletion cards, where the first field
holds the {{c1::...}} text and an optional second field shows extra
notes on the answer side.

Without --field the type gets the stock fields: Front and Back, or
Text and Back Extra for cloze types.

Examples:
  # A basic two-sided type
  typedeck create "Spanish Vocab"

  # Check typed answers against the Back field
  typedeck create "Spanish Vocab" --typed Back

  # Custom fields, typing checked against Reading
  typedeck create Kanji --field Character --field Reading --field Meaning --typed Reading

  # Cloze deletions with typing
  typedeck create "Spanish Cloze" --cloze --typed Text`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			if err := ctx.ValidateProject(); err != nil {
				return err
			}
			return cli.ValidateNoteTypeName(args[0])
		},
		RunE: runCreate,
	}

	cmd.Flags().StringArrayVar(&createFields, "field", []string{}, "Field name (repeatable, in order)")
	cmd.Flags().StringVar(&createTyped, "typed", "", "Field the typing box checks answers against")
	cmd.Flags().BoolVar(&createCloze, "cloze", false, "Make a cloze deletion type")
	cmd.Flags().BoolVar(&createMarkdown, "markdown", false, "Render field content as Markdown")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	resolver := cli.NewNoteResolver(files.TypedeckDir)
	if _, err := resolver.FindNoteType(name); err == nil {
		return fmt.Errorf("note type '%s' already exists", name)
	}

	fields, err := buildNoteTypeFields(createFields, createCloze)
	if err != nil {
		return err
	}

	typedField := ""
	if createTyped != "" {
		typedField, err = matchTypedField(createTyped, fields, createCloze)
		if err != nil {
			return err
		}
	}

	nt := &models.NoteType{
		Name:      name,
		Cloze:     createCloze,
		Markdown:  createMarkdown,
		Fields:    fields,
		Templates: []models.Template{buildNoteTypeTemplate(fields, typedField, createCloze)},
	}

	if err := files.WriteNoteType(nt); err != nil {
		return fmt.Errorf("failed to save note type: %w", err)
	}

	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.Name
	}

	cli.PrintSuccess("Created note type: %s", name)
	cli.PrintInfo("Fields: %s", strings.Join(fieldNames, ", "))
	cli.PrintInfo("Path: %s", filepath.Join(files.TypedeckDir, files.NoteTypesDir, files.Slugify(name)+".yaml"))
	cli.PrintInfo("Add notes with: typedeck add --type %q --deck <deck>", name)

	return nil
}

// buildNoteTypeFields turns the --field flags into field definitions,
// falling back to the stock field pairs when none were given.
func buildNoteTypeFields(names []string, cloze bool) ([]models.FieldDef, error) {
	if len(names) == 0 {
		if cloze {
			names = []string{"Text", "Back Extra"}
		} else {
			names = []string{"Front", "Back"}
		}
	}

	fields := make([]models.FieldDef, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("field name cannot be empty")
		}
		for _, existing := range fields {
			if strings.EqualFold(existing.Name, name) {
				return nil, fmt.Errorf("duplicate field %q", name)
			}
		}
		fields = append(fields, models.FieldDef{Name: name, Font: "Arial", Size: 20})
	}

	if !cloze && len(fields) < 2 {
		return nil, fmt.Errorf("a note type needs at least two fields, got %d", len(fields))
	}

	return fields, nil
}

// matchTypedField resolves --typed against the field list and returns
// the canonical field name. Cloze cards always check the cloze text
// field, so anything else is rejected there.
func matchTypedField(typed string, fields []models.FieldDef, cloze bool) (string, error) {
	if cloze {
		if !strings.EqualFold(typed, fields[0].Name) {
			return "", fmt.Errorf("cloze typing checks the cloze field; --typed must name %q", fields[0].Name)
		}
		return fields[0].Name, nil
	}

	for _, f := range fields {
		if strings.EqualFold(typed, f.Name) {
			return f.Name, nil
		}
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return "", fmt.Errorf("--typed names unknown field %q (fields: %s)", typed, strings.Join(names, ", "))
}

func buildNoteTypeTemplate(fields []models.FieldDef, typedField string, cloze bool) models.Template {
	if cloze {
		return clozeTemplate(fields, typedField)
	}

	front, back := fields[0].Name, fields[1].Name
	if typedField != "" {
		return models.Template{
			Name:     "Card 1",
			Question: fmt.Sprintf("{{%s}}\n\n{{type:%s}}", front, typedField),
			Answer:   fmt.Sprintf("{{%s}}\n\n<hr id=answer>\n\n{{type:%s}}", front, typedField),
		}
	}
	return models.Template{
		Name:     "Card 1",
		Question: fmt.Sprintf("{{%s}}", front),
		Answer:   fmt.Sprintf("{{FrontSide}}\n\n<hr id=answer>\n\n{{%s}}", back),
	}
}

func clozeTemplate(fields []models.FieldDef, typedField string) models.Template {
	text := fields[0].Name

	question := fmt.Sprintf("{{cloze:%s}}", text)
	answer := question
	if typedField != "" {
		question += fmt.Sprintf("\n\n{{type:cloze:%s}}", text)
		answer += fmt.Sprintf("<br>\n{{type:cloze:%s}}", text)
	}
	if len(fields) > 1 {
		answer += fmt.Sprintf("<br>\n{{%s}}", fields[1].Name)
	}

	return models.Template{Name: "Cloze", Question: question, Answer: answer}
}
