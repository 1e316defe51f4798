package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruoyu-qian/typedeck/pkg/scheduler"
	"github.com/ruoyu-qian/typedeck/pkg/tags"
	"github.com/ruoyu-qian/typedeck/pkg/utils"
)

// studyPhase tracks where the learner is on the current card.
type studyPhase int

const (
	phaseAnswering studyPhase = iota
	phaseRevealed
	phaseDone
)

type StudyModel struct {
	// Session state
	session *StudySession
	phase   studyPhase

	// Typed answer input
	input textinput.Model

	// Result of the last submit
	matched bool

	// Tag metadata for the chip row
	registry *tags.Registry

	// Window dimensions
	width  int
	height int

	// Error handling
	err error
}

func NewStudyModel(deck string) *StudyModel {
	session, err := NewStudySession(deck, time.Now())
	if err != nil {
		return &StudyModel{input: textinput.New(), err: err}
	}
	return newStudyModel(session)
}

func newStudyModel(session *StudySession) *StudyModel {
	ti := textinput.New()
	ti.Width = 40
	ti.Placeholder = session.Prompt()

	m := &StudyModel{session: session, input: ti}
	m.registry, _ = tags.NewRegistry() // Chips fall back to gray without it

	if session.Finished() {
		m.phase = phaseDone
	} else {
		m.prepareCard()
	}
	return m
}

// prepareCard resets the input for the card now showing and focuses it
// when the settings ask for that.
func (m *StudyModel) prepareCard() tea.Cmd {
	m.phase = phaseAnswering
	m.matched = false
	m.input.Reset()
	m.input.Blur()
	if c := m.session.Current(); c != nil && c.Expecting() && m.session.Settings.TypeAnswer.AutoFocus {
		return m.input.Focus()
	}
	return nil
}

func (m *StudyModel) Init() tea.Cmd {
	if m.input.Focused() {
		return textinput.Blink
	}
	return nil
}

func (m *StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "esc", "enter":
				return m, backToDeckList()
			}
			return m, nil
		}

		switch m.phase {
		case phaseAnswering:
			return m.handleAnswering(msg)
		case phaseRevealed:
			return m.handleRevealed(msg)
		case phaseDone:
			return m.handleDone(msg)
		}
	}

	// Everything else goes to the input so its cursor keeps blinking
	if m.err == nil && m.phase == phaseAnswering && m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *StudyModel) handleAnswering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.session.Current()
	if c == nil {
		m.phase = phaseDone
		return m, nil
	}

	// A focused input swallows everything except submit and blur, so
	// answers may contain any letter the bindings below use.
	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			m.reveal()
			return m, nil
		case "esc":
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m, backToDeckList()
	case "i", "tab":
		if c.Expecting() {
			return m, m.input.Focus()
		}
	case "enter", " ":
		m.reveal()
	}
	return m, nil
}

func (m *StudyModel) handleRevealed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m, backToDeckList()
	case "1", "2", "3", "4":
		return m, m.rate(ratingForKey(msg.String()))
	case "enter", " ":
		// The quick path: rate good
		return m, m.rate(scheduler.Good)
	}
	return m, nil
}

func (m *StudyModel) handleDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "enter", " ":
		cmds := []tea.Cmd{backToDeckList()}
		if answered := m.session.Answered(); answered > 0 {
			status := fmt.Sprintf("Session complete: %s in %s",
				utils.Pluralize(answered, "answer"), m.session.Deck)
			cmds = append(cmds, func() tea.Msg { return StatusMsg(status) })
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// reveal submits whatever was typed and flips to the answer side.
func (m *StudyModel) reveal() {
	m.matched = m.session.Submit(m.input.Value())
	m.input.Blur()
	m.phase = phaseRevealed
}

func (m *StudyModel) rate(rating scheduler.Rating) tea.Cmd {
	if err := m.session.Rate(rating, time.Now()); err != nil {
		m.err = err
		return nil
	}
	if m.session.Finished() {
		m.phase = phaseDone
		return nil
	}
	return m.prepareCard()
}

func (m *StudyModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'esc' to return to the deck list", m.err)
	}

	switch m.phase {
	case phaseDone:
		return m.doneView()
	case phaseRevealed:
		return m.revealView()
	default:
		return m.questionView()
	}
}

func (m *StudyModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// The input tracks the card pane width, minus prompt and borders
	w := width - 12
	if w < 20 {
		w = 20
	}
	m.input.Width = w
}

func ratingForKey(key string) scheduler.Rating {
	switch key {
	case "1":
		return scheduler.Again
	case "2":
		return scheduler.Hard
	case "3":
		return scheduler.Good
	default:
		return scheduler.Easy
	}
}

func backToDeckList() tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{view: deckListView}
	}
}
