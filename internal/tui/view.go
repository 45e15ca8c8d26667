package tui

import (
	"strings"

	"github.com/DoyleJ11/checkers-client/internal/session"
)

func (m Model) View() string {
	header := navStyle.Render(brandStyle.Render(appName) + "   " + dimStyle.Render("Lobby (ctrl+l)"))

	var body string
	switch {
	case len(m.alerts) > 0:
		body = alertStyle.Render(m.alerts[0] + "\n\n" + dimStyle.Render("[ OK ]"))
	case m.state.Modal.Visible:
		body = modalStyle.Render(titleStyle.Render(m.state.Modal.Title) + "\n\n" +
			m.state.Modal.Body + "\n\n" + dimStyle.Render("[ OK ]"))
	default:
		body = m.pageView()
	}

	parts := []string{header, "", body}
	if m.status != "" {
		parts = append(parts, "", statusStyle.Render(m.status))
	}
	parts = append(parts, "", m.footer())
	return strings.Join(parts, "\n")
}

func (m Model) footer() string {
	var keys []string
	for _, b := range m.bindings() {
		h := b.Help()
		keys = append(keys, h.Key+" "+h.Desc)
	}
	return footerStyle.Render(strings.Join(keys, " • "))
}

func (m Model) pageView() string {
	switch m.page {
	case session.PageCreateGame:
		return m.createView()
	case session.PageGame:
		return m.gameView()
	default:
		return m.lobbyView()
	}
}
