package session

import (
	"errors"
	"fmt"
)

var ErrUnsupportedEvent = errors.New("unsupported event")

// Apply folds one event into the state. It never mutates s; on error the
// returned state is s.
func Apply(s State, ev Event) ([]Notice, State, error) {
	next := s

	switch e := ev.(type) {
	case GamesBroadcast:
		// Last broadcast wins, order untouched.
		next.Games = e.Games
		return nil, next, nil

	case GameCreated:
		next.GameID = e.GameID
		return nil, next, nil

	case ColorAssigned:
		// Only a player in a game has a color. A late push after leaving is dropped.
		if s.Page != PageGame {
			return nil, s, nil
		}
		next.Color = e.Color
		return nil, next, nil

	case GameEnded:
		left, err := leaveGame(next, TriggerGameEnded)
		if err != nil {
			return nil, s, err
		}
		return nil, showModal(left, GameOverTitle, OpponentLeftBody), nil

	case Disconnected:
		left, err := leaveGame(next, TriggerDisconnect)
		if err != nil {
			return nil, s, err
		}
		return []Notice{Alert{Text: ServerLostText}}, left, nil

	case WinnerAnnounced:
		return []Notice{winnerAlert(e.Winner)}, next, nil

	case JoinRequested:
		page, err := Transition(s.Page, TriggerJoin)
		if err != nil {
			return nil, s, err
		}
		next.Page = page
		next.GameID = e.GameID
		return nil, next, nil

	case CreateRequested:
		// The id shows up later as GameCreated.
		page, err := Transition(s.Page, TriggerCreate)
		if err != nil {
			return nil, s, err
		}
		next.Page = page
		return nil, next, nil

	case LeaveRequested:
		left, err := leaveGame(next, TriggerLeave)
		if err != nil {
			return nil, s, err
		}
		return nil, left, nil

	case MoveRequested, ChatSent:
		// Server owns the board and the chat log.
		return nil, next, nil

	case Navigated:
		t, ok := navTrigger(e.Page)
		if !ok {
			return nil, s, fmt.Errorf("%w: navigate to %s", ErrInvalidTransition, e.Page)
		}
		left, err := leaveGame(next, t)
		if err != nil {
			return nil, s, err
		}
		return nil, left, nil

	case ModalDismissed:
		return nil, dismissModal(next), nil

	default:
		return nil, s, fmt.Errorf("%w: %T", ErrUnsupportedEvent, ev)
	}
}

// leaveGame moves off the game page and drops the game id and color with it.
func leaveGame(s State, t Trigger) (State, error) {
	page, err := Transition(s.Page, t)
	if err != nil {
		return s, err
	}
	s.Page = page
	s.GameID = ""
	s.Color = ColorNone
	return s, nil
}
