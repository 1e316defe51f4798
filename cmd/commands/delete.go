package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <note>",
		Short: "Delete a note permanently",
		Long: `Permanently delete a note and the review history of its cards.

Active notes should usually be archived instead; deletion cannot be
undone. Archived notes can be deleted directly.

Examples:
  # Delete an archived note
  typedeck delete example-hola

  # Delete an active note without prompts
  typedeck delete example-hola --force`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}
			return nil
		},
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	noteRef := args[0]

	resolver := cli.NewNoteResolver(files.TypedeckDir)

	var notePath string
	var note *models.Note
	var isArchived bool

	if path, err := resolver.FindNote(noteRef); err == nil {
		notePath = path
		note, err = files.ReadNote(path)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
	} else {
		matches, archErr := resolver.SearchInArchive(noteRef)
		if archErr != nil || len(matches) == 0 {
			return fmt.Errorf("note not found: %s", noteRef)
		}
		if len(matches) > 1 {
			return fmt.Errorf("multiple archived notes match '%s'. Use a longer prefix", noteRef)
		}
		notePath = matches[0]
		isArchived = true
		note, err = files.ReadArchivedNote(notePath)
		if err != nil {
			return fmt.Errorf("failed to load archived note: %w", err)
		}
	}

	if !isArchived && !deleteForce {
		cli.PrintWarning("Note '%s' is not archived. Consider archiving instead of deleting.", noteRef)
		cli.PrintInfo("Use 'typedeck archive %s' to archive, or --force to delete anyway.", noteRef)
	}

	if !deleteForce {
		skipConfirm, _ := cmd.Flags().GetBool("yes")
		if !skipConfirm {
			prompt := fmt.Sprintf("Permanently delete note '%s'? This cannot be undone.", noteRef)
			confirmed, err := cli.Confirm(prompt, false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}
		}
	}

	dir := files.NotesDir
	if isArchived {
		dir = filepath.Join(files.ArchiveDir, files.NotesDir)
	}
	if err := os.Remove(filepath.Join(files.TypedeckDir, dir, notePath)); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	// Drop the review state of every card the note produced.
	if nt, err := files.ReadNoteType(files.Slugify(note.Type) + ".yaml"); err == nil {
		for _, card := range models.Cards(note, nt) {
			if err := files.DeleteReview(card.ID()); err != nil {
				cli.PrintWarning("Failed to delete review state %s: %v", card.ID(), err)
			}
		}
	}

	cli.PrintSuccess("Deleted note: %s", noteRef)
	return nil
}
