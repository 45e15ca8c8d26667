package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/DoyleJ11/checkers-client/internal/session"
)

type keyMap struct {
	Quit    key.Binding
	Lobby   key.Binding
	Up      key.Binding
	Down    key.Binding
	Join    key.Binding
	New     key.Binding
	Submit  key.Binding
	Back    key.Binding
	Dismiss key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Lobby:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "lobby")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Join:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "join")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
	}
}

// bindings lists what the footer shows for the current screen.
func (m Model) bindings() []key.Binding {
	k := m.keys
	if len(m.alerts) > 0 || m.state.Modal.Visible {
		return []key.Binding{k.Dismiss, k.Quit}
	}
	switch m.page {
	case session.PageLobby:
		return []key.Binding{k.Up, k.Down, k.Join, k.New, k.Quit}
	case session.PageCreateGame:
		create := k.Submit
		create.SetHelp("enter", "create")
		return []key.Binding{create, k.Back, k.Quit}
	default:
		return []key.Binding{k.Submit, k.Lobby, k.Quit}
	}
}
