package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
	"github.com/DoyleJ11/checkers-client/internal/session"
)

type call struct {
	Name string
	Args []any
}

// fakeActions records what the screens asked for.
type fakeActions struct {
	calls []call
	err   error
}

func (f *fakeActions) record(name string, args ...any) error {
	f.calls = append(f.calls, call{Name: name, Args: args})
	return f.err
}

func (f *fakeActions) RequestJoin(id string) error { return f.record("join", id) }
func (f *fakeActions) RequestMove(from, to protocol.Position) error {
	return f.record("move", from, to)
}
func (f *fakeActions) RequestLeave() error { return f.record("leave") }
func (f *fakeActions) RequestCreate(name string) error { return f.record("create", name) }
func (f *fakeActions) SendChat(msg string) error { return f.record("chat", msg) }
func (f *fakeActions) GoTo(page session.Page) error { return f.record("goto", page) }
func (f *fakeActions) DismissModal() error { return f.record("dismiss") }

var _ Actions = session.Actions{}

func newTestModel() (Model, *fakeActions) {
	fa := &fakeActions{}
	return New(fa, make(chan session.Update)), fa
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLobby = tea.KeyMsg{Type: tea.KeyCtrlL}
)

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = step(t, m, keyRunes(string(r)))
	}
	return m
}

func stateOn(page session.Page) session.State {
	s := session.NewState()
	s.Page = page
	return s
}

func TestLobby_JoinSelectedGame(t *testing.T) {
	m, fa := newTestModel()
	s := stateOn(session.PageLobby)
	s.Games = []protocol.Game{{ID: "g1", Name: "one"}, {ID: "g2", Name: "two"}}
	m = step(t, m, updateMsg{Version: 1, State: s})

	m = step(t, m, keyDown)
	m = step(t, m, keyDown)
	m = step(t, m, keyEnter)

	assert.Equal(t, []call{{Name: "join", Args: []any{"g2"}}}, fa.calls)
	assert.Contains(t, m.View(), "> two")
}

func TestLobby_EnterWithNoGamesDoesNothing(t *testing.T) {
	m, fa := newTestModel()
	_ = step(t, m, keyEnter)
	assert.Empty(t, fa.calls)
}

func TestLobby_NewGoesToCreate(t *testing.T) {
	m, fa := newTestModel()
	_ = step(t, m, keyRunes("n"))
	assert.Equal(t, []call{{Name: "goto", Args: []any{session.PageCreateGame}}}, fa.calls)
}

func TestCreate_SubmitsName(t *testing.T) {
	m, fa := newTestModel()
	m = step(t, m, updateMsg{Version: 1, State: stateOn(session.PageCreateGame)})

	m = typeText(t, m, "friday")
	m = step(t, m, keyEnter)
	_ = step(t, m, keyEsc)

	assert.Equal(t, []call{
		{Name: "create", Args: []any{"friday"}},
		{Name: "goto", Args: []any{session.PageLobby}},
	}, fa.calls)
}

func TestPageChange_Remounts(t *testing.T) {
	m, _ := newTestModel()
	m = step(t, m, updateMsg{Version: 1, State: stateOn(session.PageCreateGame)})
	m = typeText(t, m, "half typed")
	require.Equal(t, "half typed", m.input.Value())

	m = step(t, m, updateMsg{Version: 2, State: stateOn(session.PageLobby)})
	m = step(t, m, updateMsg{Version: 3, State: stateOn(session.PageCreateGame)})
	assert.Empty(t, m.input.Value())
}

func TestGame_Commands(t *testing.T) {
	m, fa := newTestModel()
	s := stateOn(session.PageGame)
	s.GameID = "g1"
	m = step(t, m, updateMsg{Version: 1, State: s})

	m = typeText(t, m, "/move 5,0 4,1")
	m = step(t, m, keyEnter)
	m = typeText(t, m, "good luck")
	m = step(t, m, keyEnter)
	m = typeText(t, m, "/move nope")
	m = step(t, m, keyEnter)
	assert.Equal(t, errMoveSyntax.Error(), m.status)
	m = typeText(t, m, "/leave")
	_ = step(t, m, keyEnter)

	assert.Equal(t, []call{
		{Name: "move", Args: []any{protocol.Position{I: 5, J: 0}, protocol.Position{I: 4, J: 1}}},
		{Name: "chat", Args: []any{"good luck"}},
		{Name: "leave"},
	}, fa.calls)
}

func TestGame_ViewShowsBoardChatAndColor(t *testing.T) {
	m, _ := newTestModel()
	s := stateOn(session.PageGame)
	s.GameID = "g1"
	s.Color = session.ColorRed
	s.Games = []protocol.Game{{
		ID:    "g1",
		Name:  "friday",
		Board: []byte(`[[null,"b"],["r",null]]`),
		Chat:  []protocol.ChatMessage{{From: "bob", Text: "hi"}},
	}}
	m = step(t, m, updateMsg{Version: 1, State: s})

	v := m.View()
	assert.Contains(t, v, "friday")
	assert.Contains(t, v, "you play red")
	assert.Contains(t, v, "bob: hi")
}

func TestAlerts_BlockInputUntilDismissed(t *testing.T) {
	m, fa := newTestModel()
	m = step(t, m, updateMsg{
		Version: 1,
		State:   stateOn(session.PageLobby),
		Notices: []session.Notice{session.Alert{Text: session.ServerLostText}, session.Alert{Text: "red has won the game!"}},
	})
	assert.Contains(t, m.View(), session.ServerLostText)

	m = step(t, m, keyRunes("n"))
	assert.Empty(t, fa.calls, "keys are swallowed while an alert is up")

	m = step(t, m, keyEnter)
	assert.Contains(t, m.View(), "red has won the game!")
	m = step(t, m, keyEsc)
	assert.Empty(t, m.alerts)

	_ = step(t, m, keyRunes("n"))
	assert.Len(t, fa.calls, 1)
}

func TestModal_DismissGoesThroughSession(t *testing.T) {
	m, fa := newTestModel()
	s := stateOn(session.PageLobby)
	s.Modal = session.Modal{Visible: true, Title: session.GameOverTitle, Body: session.OpponentLeftBody}
	m = step(t, m, updateMsg{Version: 1, State: s})

	v := m.View()
	assert.Contains(t, v, session.GameOverTitle)
	assert.Contains(t, v, session.OpponentLeftBody)

	m = step(t, m, keyRunes("n"))
	_ = step(t, m, keyEnter)
	assert.Equal(t, []call{{Name: "dismiss"}}, fa.calls)
}

func TestNavbar_Lobby(t *testing.T) {
	m, fa := newTestModel()
	s := stateOn(session.PageGame)
	s.GameID = "g1"
	m = step(t, m, updateMsg{Version: 1, State: s})

	_ = step(t, m, keyLobby)
	assert.Equal(t, []call{{Name: "goto", Args: []any{session.PageLobby}}}, fa.calls)
}

func TestActionErrorShowsInStatus(t *testing.T) {
	m, fa := newTestModel()
	fa.err = errors.New("session stopped")
	m = step(t, m, keyRunes("n"))
	assert.True(t, strings.Contains(m.View(), "session stopped"))
}

func TestClosedUpdatesQuit(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(closedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWaitForUpdate(t *testing.T) {
	ch := make(chan session.Update, 1)
	ch <- session.Update{Version: 7}
	msg := waitForUpdate(ch)()
	assert.Equal(t, updateMsg(session.Update{Version: 7}), msg)

	close(ch)
	assert.Equal(t, closedMsg{}, waitForUpdate(ch)())
}
