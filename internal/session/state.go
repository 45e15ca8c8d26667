package session

import "github.com/DoyleJ11/checkers-client/internal/protocol"

type Page string

const (
	PageLobby      Page = "Lobby"
	PageCreateGame Page = "CreateNewGame"
	PageGame       Page = "Game"
)

type Color string

const (
	ColorNone  Color = ""
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

type Modal struct {
	Visible bool
	Title   string
	Body    string
}

// State is everything the views render from. Only the session loop writes it;
// views get copies.
type State struct {
	Page   Page
	Games  []protocol.Game
	GameID string
	Color  Color
	Modal  Modal
}

func NewState() State {
	return State{
		Page:  PageLobby,
		Games: []protocol.Game{},
	}
}

// Clone deep-copies the games so a reader can't reach the loop's slices.
func (s State) Clone() State {
	out := s
	if s.Games != nil {
		out.Games = make([]protocol.Game, len(s.Games))
		for i, g := range s.Games {
			out.Games[i] = g.Clone()
		}
	}
	return out
}

// CurrentGame looks the tracked game id up in the last broadcast. No id, or an
// id the broadcast doesn't carry yet, gives a fresh empty game.
func CurrentGame(s State) protocol.Game {
	if s.GameID == "" {
		return protocol.EmptyGame()
	}
	for _, g := range s.Games {
		if g.ID == s.GameID {
			return g.Clone()
		}
	}
	return protocol.EmptyGame()
}
