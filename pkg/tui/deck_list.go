package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ruoyu-qian/typedeck/pkg/files"
	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

// deckItem is one row of the deck list: the deck plus its study counts.
type deckItem struct {
	name  string
	desc  string
	notes int
	due   int
	fresh int
}

type DeckListModel struct {
	// Deck data
	decks []deckItem

	// UI state
	cursor int

	// Window dimensions
	width  int
	height int

	// Error handling
	err error
}

func NewDeckListModel() *DeckListModel {
	m := &DeckListModel{}
	m.loadDecks()
	return m
}

// loadDecks reads every deck and counts what a session would offer:
// cards due now and unseen cards. The new count is uncapped so it
// agrees with the stats command.
func (m *DeckListModel) loadDecks() {
	store, err := files.LoadStore()
	if err != nil {
		m.err = err
		return
	}
	reviews, err := files.ListReviews()
	if err != nil {
		m.err = err
		return
	}

	now := time.Now()
	m.decks = nil
	m.err = nil
	for _, d := range store.Decks {
		cards, err := store.DeckCards(d.Name)
		if err != nil {
			continue
		}

		item := deckItem{
			name:  d.Name,
			desc:  d.Description,
			notes: len(store.DeckNotes(d.Name)),
		}
		for _, queued := range scheduler.BuildQueue(cards, reviews, -1, now) {
			if queued.New {
				item.fresh++
			} else {
				item.due++
			}
		}
		m.decks = append(m.decks, item)
	}
	if m.cursor >= len(m.decks) {
		m.cursor = 0
	}
}

func (m *DeckListModel) Init() tea.Cmd {
	return nil
}

func (m *DeckListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.decks)-1 {
				m.cursor++
			}

		case "r":
			m.loadDecks()

		case "enter":
			if len(m.decks) > 0 && m.cursor < len(m.decks) {
				deck := m.decks[m.cursor].name
				return m, func() tea.Msg {
					return SwitchViewMsg{view: studyView, deck: deck}
				}
			}
		}
	}
	return m, nil
}

func (m *DeckListModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: Failed to load decks: %v\n\nPress 'q' to quit", m.err)
	}

	paneWidth := m.width - 4
	if paneWidth < 40 {
		paneWidth = 40
	}
	paneHeight := m.height - 7 // Reserve space for help pane and spacing
	if paneHeight < 6 {
		paneHeight = 6
	}

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	var content strings.Builder
	content.WriteString(headerPadding.Render(sectionHeader("DECKS", paneWidth-4)))
	content.WriteString("\n\n")

	if len(m.decks) == 0 {
		content.WriteString(headerPadding.Render(EmptyStyle.Render("No decks yet")))
		content.WriteString("\n\n")
		content.WriteString(headerPadding.Render(DimStyle.Render("Create a note with 'typedeck add' or install starter content\nwith 'typedeck examples install spanish'.")))
	} else {
		var rows strings.Builder
		for i, d := range m.decks {
			cursor := "  "
			nameStyle := NormalStyle
			if i == m.cursor {
				cursor = "> "
				nameStyle = SelectedStyle
			}

			name := d.name
			if len(name) > 24 {
				name = name[:21] + "..."
			}

			rows.WriteString(fmt.Sprintf("%s%s %s %s\n",
				cursor,
				nameStyle.Render(fmt.Sprintf("%-24s", name)),
				GetDueBadgeStyle(d.due).Render(fmt.Sprintf("%d due", d.due)),
				DimStyle.Render(fmt.Sprintf("%d new, %s", d.fresh, utils.Pluralize(d.notes, "note")))))

			if i == m.cursor && d.desc != "" {
				rows.WriteString(DimStyle.Render("      " + utils.Excerpt(d.desc, paneWidth-10)))
				rows.WriteString("\n")
			}
		}
		content.WriteString(headerPadding.Render(strings.TrimRight(rows.String(), "\n")))
	}

	pane := ActiveBorderStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(content.String())

	contentStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	help := []string{
		"↑/↓ navigate",
		"enter study",
		"r refresh",
		"q quit",
	}

	var s strings.Builder
	s.WriteString(contentStyle.Render(pane))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(renderHelpPane(m.width, help)))
	return s.String()
}

func (m *DeckListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
