package session

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid page transition")

type Trigger string

const (
	TriggerJoin       Trigger = "join"
	TriggerCreate     Trigger = "create"
	TriggerLeave      Trigger = "leave"
	TriggerGameEnded  Trigger = "end-game"
	TriggerDisconnect Trigger = "disconnect"
	TriggerGoToLobby  Trigger = "goto-lobby"
	TriggerGoToCreate Trigger = "goto-create"
)

type route struct {
	From    Page
	Trigger Trigger
	To      Page
}

var pages = []Page{PageLobby, PageCreateGame, PageGame}

// Routes is the whole page machine. The create form is only reachable from
// the lobby (or itself); Game is only entered by joining or creating.
var Routes = buildRoutes()

func buildRoutes() []route {
	var rs []route
	for _, from := range pages {
		rs = append(rs,
			route{From: from, Trigger: TriggerJoin, To: PageGame},
			route{From: from, Trigger: TriggerCreate, To: PageGame},
			route{From: from, Trigger: TriggerLeave, To: PageLobby},
			route{From: from, Trigger: TriggerGameEnded, To: PageLobby},
			route{From: from, Trigger: TriggerDisconnect, To: PageLobby},
			route{From: from, Trigger: TriggerGoToLobby, To: PageLobby},
		)
	}
	rs = append(rs,
		route{From: PageLobby, Trigger: TriggerGoToCreate, To: PageCreateGame},
		route{From: PageCreateGame, Trigger: TriggerGoToCreate, To: PageCreateGame},
	)
	return rs
}

func Transition(from Page, t Trigger) (Page, error) {
	for _, r := range Routes {
		if r.From == from && r.Trigger == t {
			return r.To, nil
		}
	}
	return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, from, t)
}

// navTrigger maps a navigation target to its trigger. Game has none.
func navTrigger(to Page) (Trigger, bool) {
	switch to {
	case PageLobby:
		return TriggerGoToLobby, true
	case PageCreateGame:
		return TriggerGoToCreate, true
	default:
		return "", false
	}
}
