package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <note>",
		Short: "Restore an archived note",
		Long: `Restore an archived note back to active study.

The note is moved from the archive directory back to the notes
directory, together with its review history.

Examples:
  # Restore a note
  typedeck restore example-hola

  # Restore without confirmation
  typedeck restore example-hola -y`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runRestore,
	}

	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	noteRef := args[0]

	resolver := cli.NewNoteResolver(files.TypedeckDir)
	matches, err := resolver.SearchInArchive(noteRef)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("archived note not found: %s", noteRef)
	}
	if len(matches) > 1 {
		return fmt.Errorf("multiple archived notes match '%s'. Use a longer prefix", noteRef)
	}
	notePath := matches[0]

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := cli.Confirm(fmt.Sprintf("Restore note '%s'?", noteRef), true)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Restore cancelled")
			return nil
		}
	}

	if err := files.UnarchiveNote(notePath); err != nil {
		return fmt.Errorf("failed to restore note: %w", err)
	}

	cli.PrintSuccess("Restored note: %s", noteRef)
	return nil
}
