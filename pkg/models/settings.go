package models

// Settings represents the application configuration
type Settings struct {
	UI         UISettings         `yaml:"ui"`
	Study      StudySettings      `yaml:"study"`
	TypeAnswer TypeAnswerSettings `yaml:"type_answer"`
	Export     ExportSettings     `yaml:"export"`
}

// UISettings controls presentation preferences
type UISettings struct {
	// Locale selects the message language, e.g. "en" or "de".
	// Empty means English.
	Locale string `yaml:"locale"`
}

// StudySettings controls session behavior
type StudySettings struct {
	MaxNewPerDay  int  `yaml:"max_new_per_day"`
	ShowRemaining bool `yaml:"show_remaining"`
}

// TypeAnswerSettings controls the typed-answer comparison
type TypeAnswerSettings struct {
	// UseInputTag renders a real input element into the question side
	// instead of the dotted prompt, and suppresses the "missing answer"
	// decoration when nothing was typed.
	UseInputTag bool `yaml:"use_input_tag"`
	// NoCodeFormatting wraps the comparison in a span instead of code.
	NoCodeFormatting bool `yaml:"no_code_formatting"`
	// AutoFocus gives the typed-answer input focus as soon as a card
	// expecting an answer is shown.
	AutoFocus bool `yaml:"auto_focus_type_in_answer"`
}

// ExportSettings controls HTML export output
type ExportSettings struct {
	DefaultFilename string `yaml:"default_filename"`
	PageTitle       string `yaml:"page_title"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Locale: "",
		},
		Study: StudySettings{
			MaxNewPerDay:  20,
			ShowRemaining: true,
		},
		TypeAnswer: TypeAnswerSettings{
			UseInputTag:      false,
			NoCodeFormatting: false,
			AutoFocus:        false,
		},
		Export: ExportSettings{
			DefaultFilename: "typedeck.html",
			PageTitle:       "typedeck export",
		},
	}
}
