package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for wrong input
	ColorSuccess  = "28"  // Green for correct input
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorPrimary  = "33"  // Blue for cloze highlights
)

// Common styles
var (
	// Border styles
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	// Header styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	ColonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive))

	// Message styles
	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	// Answer comparison styles, the terminal counterparts of the
	// typeGood/typeBad/typeMissed markup classes
	GoodStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorSuccess)).
			Foreground(lipgloss.Color(ColorWhite))

	BadStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorDanger)).
			Foreground(lipgloss.Color(ColorWhite)).
			Strikethrough(true)

	MissedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorWarning)).
			Foreground(lipgloss.Color(ColorDark))

	// Cloze deletion highlight
	ClozeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimary))

	// Correct answer confirmation
	CorrectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	// Help border style (always inactive looking)
	HelpBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive))
)

// Due badge styles based on how much work is waiting
func GetDueBadgeStyle(due int) lipgloss.Style {
	switch {
	case due == 0:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			Padding(0, 1)
	case due < 20:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(ColorWarning)).
			Foreground(lipgloss.Color(ColorDark)).
			Padding(0, 1).
			Bold(true)
	default:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(ColorDanger)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1).
			Bold(true)
	}
}

// Dynamic styles that depend on state
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// Tag chip style
func GetTagChipStyle(color string) lipgloss.Style {
	if color == "" {
		color = ColorInactive
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
}
