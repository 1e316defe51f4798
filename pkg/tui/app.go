package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionState int

const (
	deckListView sessionState = iota
	studyView
)

type App struct {
	state     sessionState
	deckList  *DeckListModel
	study     *StudyModel
	width     int
	height    int
	statusMsg string
}

func NewApp() *App {
	return &App{
		state:    deckListView,
		deckList: NewDeckListModel(),
	}
}

// NewAppForDeck opens the study view directly on one deck.
func NewAppForDeck(deck string) *App {
	return &App{
		state: studyView,
		study: NewStudyModel(deck),
	}
}

func (a *App) Init() tea.Cmd {
	switch a.state {
	case studyView:
		return a.study.Init()
	default:
		return a.deckList.Init()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		if a.deckList != nil {
			a.deckList.SetSize(msg.Width, msg.Height)
		}
		if a.study != nil {
			a.study.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		// Handle view switching
		switch msg.view {
		case deckListView:
			a.state = deckListView
			if a.deckList == nil {
				a.deckList = NewDeckListModel()
				a.deckList.SetSize(a.width, a.height)
			} else {
				// Reload counts when returning from a session
				a.deckList.loadDecks()
			}
			return a, a.deckList.Init()
		case studyView:
			// Sessions are never resumed; entering the view builds a
			// fresh queue for the chosen deck.
			a.state = studyView
			a.study = NewStudyModel(msg.deck)
			a.study.SetSize(a.width, a.height)
			return a, a.study.Init()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case deckListView:
		var m tea.Model
		m, cmd = a.deckList.Update(msg)
		if dl, ok := m.(*DeckListModel); ok {
			a.deckList = dl
		}
	case studyView:
		var m tea.Model
		m, cmd = a.study.Update(msg)
		if sm, ok := m.(*StudyModel); ok {
			a.study = sm
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case deckListView:
		content = a.deckList.View()
	case studyView:
		content = a.study.View()
	default:
		content = "Unknown view"
	}

	// Add status bar if there's a message
	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

		statusBar := statusStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view sessionState
	deck string // deck to study when entering the study view
}
