package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruoyu-qian/typedeck/internal/cli"
	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// settingKeys lists every key the set command accepts, in display order.
var settingKeys = []string{
	"ui.locale",
	"study.max_new_per_day",
	"study.show_remaining",
	"type_answer.use_input_tag",
	"type_answer.no_code_formatting",
	"type_answer.auto_focus",
	"export.default_filename",
	"export.page_title",
}

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Show or change settings",
		Long: `Show the current settings, or change one value.

Without arguments every setting is listed. With a key and a value the
setting is changed and saved to .typedeck/settings.yaml.

Keys:
  ui.locale                       Message language (BCP 47, e.g. "de")
  study.max_new_per_day           New cards a session introduces at most
  study.show_remaining            Show due/new counts while studying
  type_answer.use_input_tag       Render a real input element in HTML previews
  type_answer.no_code_formatting  Compare answers in a span instead of code
  type_answer.auto_focus          Focus the typed-answer input automatically
  export.default_filename         Default file name for export
  export.page_title               Page title for preview and export

Examples:
  # List the settings
  typedeck set

  # German messages
  typedeck set ui.locale de

  # Focus the answer input as soon as a card comes up
  typedeck set type_answer.auto_focus true

  # Introduce at most 10 new cards per session
  typedeck set study.max_new_per_day 10`,
		Args: cobra.MaximumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext()
			if err != nil {
				return err
			}
			return ctx.ValidateProject()
		},
		RunE: runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	settings, err := files.ReadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch len(args) {
	case 0:
		return printSettings(cmd, settings)
	case 1:
		return fmt.Errorf("missing value for %q; usage: typedeck set <key> <value>", args[0])
	}

	key, value := args[0], args[1]
	if err := applySetting(settings, key, value); err != nil {
		return err
	}
	if err := files.WriteSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cli.PrintSuccess("Set %s = %s", key, settingValue(settings, key))
	return nil
}

func applySetting(settings *models.Settings, key, value string) error {
	switch key {
	case "ui.locale":
		settings.UI.Locale = value
	case "study.max_new_per_day":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s expects a non-negative number, got %q", key, value)
		}
		settings.Study.MaxNewPerDay = n
	case "study.show_remaining":
		return setBool(&settings.Study.ShowRemaining, key, value)
	case "type_answer.use_input_tag":
		return setBool(&settings.TypeAnswer.UseInputTag, key, value)
	case "type_answer.no_code_formatting":
		return setBool(&settings.TypeAnswer.NoCodeFormatting, key, value)
	case "type_answer.auto_focus":
		return setBool(&settings.TypeAnswer.AutoFocus, key, value)
	case "export.default_filename":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		settings.Export.DefaultFilename = value
	case "export.page_title":
		settings.Export.PageTitle = value
	default:
		return fmt.Errorf("unknown setting %q (valid keys: %s)", key, strings.Join(settingKeys, ", "))
	}
	return nil
}

func setBool(target *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s expects true or false, got %q", key, value)
	}
	*target = b
	return nil
}

// settingValue renders one setting for display. Keys are checked by
// applySetting before this runs.
func settingValue(settings *models.Settings, key string) string {
	switch key {
	case "ui.locale":
		if settings.UI.Locale == "" {
			return "(default: en)"
		}
		return settings.UI.Locale
	case "study.max_new_per_day":
		return strconv.Itoa(settings.Study.MaxNewPerDay)
	case "study.show_remaining":
		return strconv.FormatBool(settings.Study.ShowRemaining)
	case "type_answer.use_input_tag":
		return strconv.FormatBool(settings.TypeAnswer.UseInputTag)
	case "type_answer.no_code_formatting":
		return strconv.FormatBool(settings.TypeAnswer.NoCodeFormatting)
	case "type_answer.auto_focus":
		return strconv.FormatBool(settings.TypeAnswer.AutoFocus)
	case "export.default_filename":
		return settings.Export.DefaultFilename
	case "export.page_title":
		return settings.Export.PageTitle
	}
	return ""
}

// SettingEntry is one row of the settings listing
type SettingEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func printSettings(cmd *cobra.Command, settings *models.Settings) error {
	entries := make([]SettingEntry, 0, len(settingKeys))
	for _, key := range settingKeys {
		entries = append(entries, SettingEntry{Key: key, Value: settingValue(settings, key)})
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, entries)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("Setting", "Value")
	for _, e := range entries {
		table.Row(e.Key, e.Value)
	}
	table.Flush()
	return nil
}
