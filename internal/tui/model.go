package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
	"github.com/DoyleJ11/checkers-client/internal/session"
)

// Actions is what the screens can ask of the session. session.Actions
// satisfies it.
type Actions interface {
	RequestJoin(gameID string) error
	RequestMove(selected, destination protocol.Position) error
	RequestLeave() error
	RequestCreate(name string) error
	SendChat(message string) error
	GoTo(page session.Page) error
	DismissModal() error
}

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type updateMsg session.Update

// closedMsg means the session stopped feeding us.
type closedMsg struct{}

func waitForUpdate(ch <-chan session.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return updateMsg(u)
	}
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type Model struct {
	actions Actions
	updates <-chan session.Update
	keys    keyMap

	state   session.State
	version int
	alerts  []string
	status  string

	// Per-page locals. mount resets them whenever the page changes.
	page   session.Page
	cursor int
	input  textinput.Model

	width  int
	height int
}

func New(actions Actions, updates <-chan session.Update) Model {
	m := Model{
		actions: actions,
		updates: updates,
		keys:    newKeyMap(),
		state:   session.NewState(),
	}
	m.mount(m.state.Page)
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		return m.handleUpdate(session.Update(msg))
	case closedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleUpdate(u session.Update) (tea.Model, tea.Cmd) {
	m.state = u.State
	m.version = u.Version
	for _, n := range u.Notices {
		if a, ok := n.(session.Alert); ok {
			m.alerts = append(m.alerts, a.Text)
		}
	}
	if u.State.Page != m.page {
		m.mount(u.State.Page)
	}
	if m.cursor >= len(m.state.Games) {
		m.cursor = max(len(m.state.Games)-1, 0)
	}
	return m, waitForUpdate(m.updates)
}

// mount swaps in a fresh screen for page. Nothing from the previous screen
// survives.
func (m *Model) mount(page session.Page) {
	m.page = page
	m.cursor = 0
	m.status = ""
	m.input = textinput.New()
	m.input.CharLimit = 200
	switch page {
	case session.PageCreateGame:
		m.input.Prompt = "name> "
		m.input.Placeholder = "Game name"
		m.input.Focus()
	case session.PageGame:
		m.input.Prompt = "> "
		m.input.Placeholder = "chat, /move r,c r,c or /leave"
		m.input.Focus()
	}
	if m.width > 0 {
		m.input.Width = max(m.width-8, 10)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Alerts block everything until dismissed, oldest first.
	if len(m.alerts) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alerts = m.alerts[1:]
		}
		return m, nil
	}
	if m.state.Modal.Visible {
		if key.Matches(msg, m.keys.Dismiss) {
			m.report(m.actions.DismissModal())
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Lobby) {
		m.report(m.actions.GoTo(session.PageLobby))
		return m, nil
	}

	switch m.page {
	case session.PageLobby:
		return m.updateLobby(msg)
	case session.PageCreateGame:
		return m.updateCreate(msg)
	case session.PageGame:
		return m.updateGame(msg)
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}
