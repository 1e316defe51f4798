package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
)

// NewArchiveCommand creates the archive command
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <note>",
		Short: "Archive a note",
		Long: `Archive a note to move it out of active study.

Archived notes are moved to the archive directory. They keep their
review history and won't appear in listings, searches or study queues
unless specifically requested.

Examples:
  # Archive a note
  typedeck archive example-hola

  # Archive without confirmation
  typedeck archive example-hola -y`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runArchive,
	}

	return cmd
}

func runArchive(cmd *cobra.Command, args []string) error {
	noteRef := args[0]

	resolver := cli.NewNoteResolver(files.TypedeckDir)
	notePath, err := resolver.FindNote(noteRef)
	if err != nil {
		if archived, archErr := resolver.SearchInArchive(noteRef); archErr == nil && len(archived) > 0 {
			return fmt.Errorf("note is already archived: %s", noteRef)
		}
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := cli.Confirm(fmt.Sprintf("Archive note '%s'?", noteRef), false)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Archive cancelled")
			return nil
		}
	}

	if err := files.ArchiveNote(notePath); err != nil {
		return fmt.Errorf("failed to archive note: %w", err)
	}

	cli.PrintSuccess("Archived note: %s", noteRef)
	return nil
}
