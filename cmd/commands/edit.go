package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <note>",
		Short: "Edit a note in your editor",
		Long: `Open a note's YAML file in your default editor ($EDITOR).

The note can be specified by ID, filename or a unique ID prefix.

Examples:
  # Edit a note
  typedeck edit example-hola

  # Edit with a specific editor
  EDITOR=vim typedeck edit example-hola`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runEdit,
	}

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	noteRef := args[0]

	resolver := cli.NewNoteResolver(files.TypedeckDir)
	notePath, err := resolver.FindNote(noteRef)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(files.TypedeckDir, files.NotesDir, notePath)

	launcher := cli.NewEditorLauncher()
	cli.PrintInfo("Opening %s in editor...", fullPath)
	if err := launcher.OpenFile(fullPath); err != nil {
		return err
	}

	// Re-read so malformed edits surface immediately.
	if _, err := files.ReadNote(notePath); err != nil {
		cli.PrintWarning("Edited note does not parse: %v", err)
		return err
	}

	cli.PrintSuccess("Note edited successfully")
	return nil
}
