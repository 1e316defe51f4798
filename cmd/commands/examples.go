package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/pkg/examples"
	"github.com/ruoyu-qian/typedeck/pkg/files"
)

func NewExamplesCommand() *cobra.Command {
	var category string
	var listOnly bool
	var force bool

	cmd := &cobra.Command{
		Use:   "examples [category]",
		Short: "Add example note types and decks to your project",
		Long: `Add example note types and decks to your .typedeck directory.

Examples include the standard note types (basic, typed answer, cloze) plus
a small starter deck so you can try a study session right away.

Categories:
  standard     - Standard note types (default)
  spanish      - Spanish starter deck with typed-answer notes
  all          - Install all example categories

Installed notes carry an 'example-' prefix to distinguish them from your
own content.`,
		Example: `  # Add the standard note types
  typedeck examples

  # Add the Spanish starter deck
  typedeck examples spanish

  # List available examples without installing
  typedeck examples --list

  # Add all examples
  typedeck examples all

  # Force overwrite existing examples
  typedeck examples standard --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .typedeck directory found. Run 'typedeck init' first")
			}

			if len(args) > 0 {
				category = args[0]
			} else if category == "" {
				// Listing shows everything; installing defaults to the
				// standard note types.
				if listOnly {
					category = "all"
				} else {
					category = "standard"
				}
			}

			validCategories := []string{"standard", "spanish", "all"}
			isValid := false
			for _, valid := range validCategories {
				if category == valid {
					isValid = true
					break
				}
			}
			if !isValid {
				return fmt.Errorf("invalid category '%s'. Valid categories: %s",
					category, strings.Join(validCategories, ", "))
			}

			if listOnly {
				return listExamples(cmd, category)
			}

			return installExamples(cmd, category, force)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category of examples to add")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List available examples without installing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing example files")

	return cmd
}

func listExamples(cmd *cobra.Command, category string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	if !quiet {
		if category == "all" {
			fmt.Fprintf(cmd.OutOrStdout(), "Available examples (all categories):\n\n")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Available examples in category '%s':\n\n", category)
		}
	}

	exampleSets := examples.GetExamples(category)

	for _, set := range exampleSets {
		if !quiet {
			if category == "all" && set.Category != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", set.Category, set.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", set.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n\n", set.Description)
		}

		if len(set.NoteTypes) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   Note types:\n")
			for _, nt := range set.NoteTypes {
				kind := "regular"
				if nt.Cloze {
					kind = "cloze"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "   - %s (%s)\n", nt.Name, kind)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}

		if len(set.Decks) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   Decks:\n")
			for _, deck := range set.Decks {
				fmt.Fprintf(cmd.OutOrStdout(), "   - %s (%d notes)\n", deck.Name, countDeckNotes(set, deck.Name))
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	if !quiet {
		if category == "all" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nTo install all examples, run: typedeck examples all\n")
			fmt.Fprintf(cmd.OutOrStdout(), "To install a specific category, run: typedeck examples <category>\n")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "\nTo install these examples, run: typedeck examples %s\n", category)
		}
	}

	return nil
}

func countDeckNotes(set examples.ExampleSet, deck string) int {
	n := 0
	for _, note := range set.Notes {
		if note.Deck == deck {
			n++
		}
	}
	return n
}

func installExamples(cmd *cobra.Command, category string, force bool) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Installing %s examples...\n\n", category)
	}

	exampleSets := examples.GetExamples(category)

	totalNoteTypes := 0
	totalDecks := 0
	totalNotes := 0
	skipped := 0

	for _, set := range exampleSets {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Installing %s...\n", set.Name)
		}

		// Note types first so installed notes always resolve.
		for _, nt := range set.NoteTypes {
			installed, err := examples.InstallNoteType(nt, force)
			if err != nil {
				if !force && strings.Contains(err.Error(), "already exists") {
					skipped++
					if !quiet {
						fmt.Fprintf(cmd.OutOrStdout(), "   ! Skipped %s (already exists, use --force to overwrite)\n", nt.Name)
					}
					continue
				}
				return fmt.Errorf("failed to install note type %s: %w", nt.Name, err)
			}

			if installed {
				totalNoteTypes++
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "   + Installed note type %s\n", nt.Name)
				}
			}
		}

		for _, deck := range set.Decks {
			installed, err := examples.InstallDeck(deck, force)
			if err != nil {
				if !force && strings.Contains(err.Error(), "already exists") {
					skipped++
					if !quiet {
						fmt.Fprintf(cmd.OutOrStdout(), "   ! Skipped %s (already exists, use --force to overwrite)\n", deck.Name)
					}
					continue
				}
				return fmt.Errorf("failed to install deck %s: %w", deck.Name, err)
			}

			if installed {
				totalDecks++
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "   + Installed deck %s\n", deck.Name)
				}
			}
		}

		for _, note := range set.Notes {
			installed, err := examples.InstallNote(note, force)
			if err != nil {
				if !force && strings.Contains(err.Error(), "already exists") {
					skipped++
					if !quiet {
						fmt.Fprintf(cmd.OutOrStdout(), "   ! Skipped %s (already exists, use --force to overwrite)\n", note.ID)
					}
					continue
				}
				return fmt.Errorf("failed to install note %s: %w", note.ID, err)
			}

			if installed {
				totalNotes++
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "   + Installed note %s\n", note.ID)
				}
			}
		}

		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Installation complete!\n\n")
		fmt.Fprintf(cmd.OutOrStdout(), "Installed:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - %d note types\n", totalNoteTypes)
		fmt.Fprintf(cmd.OutOrStdout(), "  - %d decks\n", totalDecks)
		fmt.Fprintf(cmd.OutOrStdout(), "  - %d notes\n", totalNotes)

		if skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %d items skipped (already exist)\n", skipped)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nTips:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - Run 'typedeck' to study the examples in the TUI\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - Look for notes with the 'example-' prefix\n")

		if category == "spanish" || category == "all" {
			fmt.Fprintf(cmd.OutOrStdout(), "  - Try 'typedeck study Spanish' for a typed-answer session\n")
		}
	}

	return nil
}
