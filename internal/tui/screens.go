package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DoyleJ11/checkers-client/internal/session"
)

const chatLines = 8

// ---------------------------------------------------------------------------
// Lobby
// ---------------------------------------------------------------------------

func (m Model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Games)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Join):
		if len(m.state.Games) == 0 {
			return m, nil
		}
		m.report(m.actions.RequestJoin(m.state.Games[m.cursor].ID))
	case key.Matches(msg, m.keys.New):
		m.report(m.actions.GoTo(session.PageCreateGame))
	}
	return m, nil
}

func (m Model) lobbyView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Open games"))
	b.WriteString("\n\n")
	if len(m.state.Games) == 0 {
		b.WriteString(dimStyle.Render("No games yet. Press n to create one."))
		return b.String()
	}
	for i, g := range m.state.Games {
		name := g.Name
		if name == "" {
			name = g.ID
		}
		line := fmt.Sprintf("%s  %s", name, dimStyle.Render(g.ID))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ---------------------------------------------------------------------------
// Create game
// ---------------------------------------------------------------------------

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.report(m.actions.RequestCreate(strings.TrimSpace(m.input.Value())))
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.report(m.actions.GoTo(session.PageLobby))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) createView() string {
	return titleStyle.Render("Create a new game") + "\n\n" + m.input.View()
}

// ---------------------------------------------------------------------------
// Game
// ---------------------------------------------------------------------------

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Submit) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.status = ""
	switch {
	case line == "/leave":
		m.report(m.actions.RequestLeave())
	case strings.HasPrefix(line, "/move"):
		from, to, err := parseMove(strings.TrimPrefix(line, "/move"))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.report(m.actions.RequestMove(from, to))
	default:
		m.report(m.actions.SendChat(line))
	}
	return m, nil
}

func (m Model) gameView() string {
	game := session.CurrentGame(m.state)

	title := "Waiting for game"
	if game.Name != "" {
		title = game.Name
	} else if m.state.GameID != "" {
		title = m.state.GameID
	}
	color := "not assigned yet"
	if m.state.Color != session.ColorNone {
		color = string(m.state.Color)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("you play " + color))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(game.Board))
	b.WriteString("\n\n")

	chat := game.Chat
	if len(chat) > chatLines {
		chat = chat[len(chat)-chatLines:]
	}
	if len(chat) == 0 {
		b.WriteString(dimStyle.Render("No messages."))
	}
	for i, c := range chat {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.String())
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}
