package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

var (
	clozeSpanPattern = regexp.MustCompile(`(?s)<span class="cloze">(.+?)</span>`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
)

// cardText reduces rendered card markup to styled terminal text: cloze
// deletions keep their highlight, every other tag is stripped and blank
// runs collapse to one empty line.
func cardText(markup string) string {
	styled := clozeSpanPattern.ReplaceAllStringFunc(markup, func(m string) string {
		inner := clozeSpanPattern.FindStringSubmatch(m)[1]
		return ClozeStyle.Render(inner)
	})
	text := utils.StripHTML(styled)
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// sectionHeader renders the "HEADING ::::" line shown at the top of a
// view, colons filling the remaining width.
func sectionHeader(title string, width int) string {
	remaining := width - lipgloss.Width(title) - 3
	if remaining < 3 {
		remaining = 3
	}
	return HeaderStyle.Render(title) + " " + ColonStyle.Render(strings.Repeat(":", remaining))
}

// formatHelpText joins help entries into one dimmed line.
func formatHelpText(entries []string) string {
	return DimStyle.Render(strings.Join(entries, " • "))
}

// renderHelpPane wraps the help line in the bordered pane shown at the
// bottom of every view.
func renderHelpPane(width int, entries []string) string {
	paneWidth := width - 4 // Account for outer padding and borders
	if paneWidth < 20 {
		paneWidth = 20
	}
	return HelpBorderStyle.
		Width(paneWidth).
		Padding(0, 1).
		Render(formatHelpText(entries))
}
