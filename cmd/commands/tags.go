package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/tags"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

// NewTagsCommand creates the tags command group
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Maintain the tag registry",
		Long: `Maintain the tag registry stored in .typedeck/tags.yaml.

The registry holds display colors for tags. It normally updates itself
as notes are created, but editing note files by hand can leave it out
of sync: sync registers tags that exist only on notes, cleanup drops
registry entries no note uses anymore, and rename changes a tag on the
registry and on every note that carries it.

Tag usage counts are part of 'typedeck list tags' and 'typedeck stats'.

Examples:
  # Rename a tag everywhere
  typedeck tags rename vocab vocabulary

  # Register tags added by editing note files directly
  typedeck tags sync

  # Drop registry entries no note uses
  typedeck tags cleanup`,
	}

	cmd.AddCommand(newTagsRenameCommand())
	cmd.AddCommand(newTagsSyncCommand())
	cmd.AddCommand(newTagsCleanupCommand())

	return cmd
}

func tagsPreRun(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	return ctx.ValidateProject()
}

func newTagsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rename <old> <new>",
		Short:   "Rename a tag on the registry and on every note",
		Args:    cobra.ExactArgs(2),
		PreRunE: tagsPreRun,
		RunE:    runTagsRename,
	}
}

func runTagsRename(cmd *cobra.Command, args []string) error {
	registry, err := tags.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tag registry: %w", err)
	}

	oldName, newName := args[0], args[1]
	if err := registry.RenameTag(oldName, newName); err != nil {
		return err
	}
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save tag registry: %w", err)
	}

	if stats, err := tags.CountTagUsage(newName); err == nil {
		cli.PrintSuccess("Renamed tag '%s' to '%s', now on %s", oldName, newName,
			utils.Pluralize(stats.NoteCount, "note"))
	} else {
		cli.PrintSuccess("Renamed tag '%s' to '%s'", oldName, newName)
	}
	return nil
}

func newTagsSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Short:   "Register tags that exist only on notes",
		Args:    cobra.NoArgs,
		PreRunE: tagsPreRun,
		RunE:    runTagsSync,
	}
}

func runTagsSync(cmd *cobra.Command, args []string) error {
	added, err := tags.SyncFromNotes()
	if err != nil {
		return fmt.Errorf("failed to sync tags: %w", err)
	}

	if len(added) == 0 {
		cli.PrintInfo("Tag registry already covers every note")
		return nil
	}

	sort.Strings(added)
	cli.PrintSuccess("Registered %s: %s", utils.Pluralize(len(added), "tag"), strings.Join(added, ", "))
	return nil
}

func newTagsCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "cleanup",
		Short:   "Drop registry entries no note uses",
		Args:    cobra.NoArgs,
		PreRunE: tagsPreRun,
		RunE:    runTagsCleanup,
	}
}

func runTagsCleanup(cmd *cobra.Command, args []string) error {
	registry, err := tags.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tag registry: %w", err)
	}

	names := make([]string, 0)
	for _, tag := range registry.ListTags() {
		names = append(names, tag.Name)
	}

	removed, err := tags.CleanupOrphanedTags(names)
	if err != nil {
		return fmt.Errorf("failed to clean up tags: %w", err)
	}

	if len(removed) == 0 {
		cli.PrintInfo("No orphaned tags")
		return nil
	}

	sort.Strings(removed)
	cli.PrintSuccess("Removed %s: %s", utils.Pluralize(len(removed), "orphaned tag"), strings.Join(removed, ", "))
	return nil
}
