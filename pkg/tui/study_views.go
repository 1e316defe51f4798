package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ruoyu-qian/typedeck/pkg/diff"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
	"github.com/ruoyu-qian/typedeck/pkg/typeans"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

func (m *StudyModel) questionView() string {
	c := m.session.Current()
	if c == nil {
		return m.doneView()
	}

	var body strings.Builder
	body.WriteString(wordwrap.String(cardText(typeans.StripPlaceholders(c.Question)), m.textWidth()))

	if warning, ok := c.Type.Warning(); ok {
		body.WriteString("\n\n")
		body.WriteString(WarningStyle.Render(warning))
	}

	if c.Expecting() {
		borderColor := ColorInactive
		if m.input.Focused() {
			borderColor = ColorActive
		}
		inputBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(borderColor)).
			Padding(0, 1).
			Render(m.input.View())
		body.WriteString("\n\n")
		body.WriteString(inputBox)
	}

	if chips := m.badgeRow(c); chips != "" {
		body.WriteString("\n\n")
		body.WriteString(chips)
	}

	return m.frame(body.String(), m.answeringHelp(c))
}

func (m *StudyModel) revealView() string {
	c := m.session.Current()
	if c == nil {
		return m.doneView()
	}

	var body strings.Builder
	if c.Expecting() {
		// The comparison takes the placeholder's position inside the
		// answer side, mirroring the exported markup.
		before, after, _ := typeans.SplitPlaceholder(c.Answer)
		if text := cardText(before); text != "" {
			body.WriteString(wordwrap.String(text, m.textWidth()))
			body.WriteString("\n\n")
		}
		body.WriteString(m.comparisonView(c))
		if text := cardText(typeans.StripPlaceholders(after)); text != "" {
			body.WriteString("\n\n")
			body.WriteString(wordwrap.String(text, m.textWidth()))
		}
	} else {
		body.WriteString(wordwrap.String(cardText(typeans.StripPlaceholders(c.Answer)), m.textWidth()))
	}

	if chips := m.badgeRow(c); chips != "" {
		body.WriteString("\n\n")
		body.WriteString(chips)
	}

	body.WriteString("\n\n")
	body.WriteString(m.ratingBar())

	return m.frame(body.String(), m.revealedHelp())
}

func (m *StudyModel) doneView() string {
	var body strings.Builder
	if m.session.Answered() == 0 {
		body.WriteString(EmptyStyle.Render("Nothing to study"))
		body.WriteString("\n\n")
		body.WriteString(DimStyle.Render("No cards are due in " + m.session.Deck + " and no new cards are left."))
	} else {
		body.WriteString(CorrectStyle.Render("Session complete"))
		body.WriteString("\n\n")
		body.WriteString(NormalStyle.Render(utils.Pluralize(m.session.Answered(), "answer")))
		body.WriteString("\n")
		body.WriteString(fmt.Sprintf("%s  %s  %s  %s",
			ErrorStyle.Render(fmt.Sprintf("again %d", m.session.Count(scheduler.Again))),
			WarningStyle.Render(fmt.Sprintf("hard %d", m.session.Count(scheduler.Hard))),
			CorrectStyle.Render(fmt.Sprintf("good %d", m.session.Count(scheduler.Good))),
			ClozeStyle.Render(fmt.Sprintf("easy %d", m.session.Count(scheduler.Easy)))))
	}

	return m.frame(body.String(), []string{"enter back to decks", "q quit"})
}

// comparisonView renders the typed-against-expected comparison the way
// the exported markup does, with terminal styles instead of spans:
// the expected answer with missed runs marked, an arrow, then the typed
// answer with wrong runs marked.
func (m *StudyModel) comparisonView(c *SessionCard) string {
	correct, _ := c.Type.Correct()
	typed := c.Type.Input()

	if m.matched {
		return CorrectStyle.Render(correct + " ✔")
	}
	if typed == "" {
		return MissedStyle.Render(correct)
	}

	var right, wrong strings.Builder
	for _, seg := range m.session.Comparison() {
		switch seg.Op {
		case diff.Missing:
			right.WriteString(MissedStyle.Render(seg.Text))
		case diff.Bad:
			wrong.WriteString(BadStyle.Render(seg.Text))
		case diff.Equal:
			right.WriteString(GoodStyle.Render(seg.Text))
			wrong.WriteString(GoodStyle.Render(seg.Text))
		}
	}
	return right.String() + "\n" + DimStyle.Render("↓") + "\n" + wrong.String()
}

// ratingBar shows the four ratings with the interval each would give.
func (m *StudyModel) ratingBar() string {
	now := time.Now()
	intervals := m.session.Intervals(now)

	labels := []struct {
		key    string
		name   string
		rating scheduler.Rating
		style  lipgloss.Style
	}{
		{"1", "again", scheduler.Again, ErrorStyle},
		{"2", "hard", scheduler.Hard, WarningStyle},
		{"3", "good", scheduler.Good, CorrectStyle},
		{"4", "easy", scheduler.Easy, ClozeStyle},
	}

	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		part := l.style.Render(l.key + " " + l.name)
		if due, ok := intervals[l.rating]; ok {
			part += DimStyle.Render(" " + utils.FormatRelative(due, now))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "   ")
}

// badgeRow renders the new-card marker and the note's tags as chips.
func (m *StudyModel) badgeRow(c *SessionCard) string {
	var chips []string
	if c.Item.New {
		chips = append(chips, GetTagChipStyle(ColorPrimary).Render("new"))
	}
	for _, name := range c.Item.Card.Note.Tags {
		color := ""
		if m.registry != nil {
			if t, ok := m.registry.GetTag(name); ok {
				color = t.Color
			}
		}
		chips = append(chips, GetTagChipStyle(color).Render(name))
	}
	return strings.Join(chips, " ")
}

// headerLine builds the view heading with right-aligned progress,
// colons filling the space between.
func (m *StudyModel) headerLine(width int) string {
	title := "STUDYING " + strings.ToUpper(m.session.Deck)
	pos, total := m.session.Position()
	progress := fmt.Sprintf("card %d of %d", pos, total)
	if m.session.Settings.Study.ShowRemaining {
		due, fresh := m.session.Remaining()
		progress = fmt.Sprintf("%s (%d due, %d new left)", progress, due, fresh)
	}
	badge := DimStyle.Render(progress)

	remaining := width - lipgloss.Width(title) - lipgloss.Width(badge) - 4
	if remaining < 3 {
		remaining = 3
	}
	return HeaderStyle.Render(title) + " " + ColonStyle.Render(strings.Repeat(":", remaining)) + " " + badge
}

// frame lays out one study screen: heading, the bordered card pane and
// the help pane.
func (m *StudyModel) frame(body string, help []string) string {
	paneWidth := m.width - 4
	if paneWidth < 40 {
		paneWidth = 40
	}
	paneHeight := m.height - 7 // Reserve space for help pane and spacing
	if paneHeight < 8 {
		paneHeight = 8
	}

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	var content strings.Builder
	content.WriteString(headerPadding.Render(m.headerLine(paneWidth - 4)))
	content.WriteString("\n\n")
	content.WriteString(headerPadding.Render(body))

	pane := ActiveBorderStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(content.String())

	contentStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	var s strings.Builder
	s.WriteString(contentStyle.Render(pane))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(renderHelpPane(m.width, help)))
	return s.String()
}

func (m *StudyModel) answeringHelp(c *SessionCard) []string {
	if m.input.Focused() {
		return []string{"enter check answer", "esc leave input", "ctrl+c quit"}
	}
	help := []string{"enter reveal"}
	if c.Expecting() {
		help = []string{"i type answer", "enter reveal"}
	}
	return append(help, "esc decks", "q quit")
}

func (m *StudyModel) revealedHelp() []string {
	return []string{"1-4 rate", "space good", "esc decks", "q quit"}
}

// textWidth is the wrap width for card text inside the pane.
func (m *StudyModel) textWidth() int {
	w := m.width - 10
	if w < 30 {
		w = 30
	}
	if w > 78 {
		w = 78
	}
	return w
}
