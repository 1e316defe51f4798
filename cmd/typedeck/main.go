package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/cmd/commands"
	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/examples"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagOutput  string
	flagQuiet   bool
	flagNoColor bool
	flagYes     bool
)

var rootCmd = &cobra.Command{
	Use:   "typedeck",
	Short: "Terminal flashcards with typed answers",
	Long:  `Typedeck is a terminal flashcard tool built around typing the answer. Notes, decks and review state are stored as plain YAML files, and study sessions compare what you type against the expected answer character by character.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Check if .typedeck directory exists
		if _, err := os.Stat(files.TypedeckDir); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: No .typedeck directory found in the current directory.\n")
			fmt.Fprintf(os.Stderr, "Please run 'typedeck init' first to initialize a new project.\n")
			os.Exit(1)
		}

		// Launch TUI
		app := tui.NewApp()
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var initWithExamples bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new typedeck project",
	Long:  `Creates the .typedeck folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing typedeck project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Println("✓ Created .typedeck folder structure")

		if initWithExamples {
			if err := installStarterExamples(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: Failed to install examples: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("✓ Installed the standard note types")
		}

		fmt.Println("\nRun 'typedeck' to start studying, or 'typedeck examples' for starter content.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of typedeck",
	Long:  `Display the current version of the typedeck CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("typedeck version %s\n", version)
	},
}

// installStarterExamples puts the standard note types in place. Fresh
// projects have nothing to collide with, so force is never needed.
func installStarterExamples() error {
	for _, set := range examples.GetExamples("standard") {
		for _, nt := range set.NoteTypes {
			if _, err := examples.InstallNoteType(nt, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to confirmation prompts")

	initCmd.Flags().BoolVar(&initWithExamples, "examples", false, "Also install the standard note types")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewArchiveCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewEditCommand())
	rootCmd.AddCommand(commands.NewExamplesCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewRestoreCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewStudyCommand())
	rootCmd.AddCommand(commands.NewTagsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
