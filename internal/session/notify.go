package session

import "fmt"

const (
	GameOverTitle    = "Game Over"
	OpponentLeftBody = "Your opponent has left the game"
	ServerLostText   = "The server crashed or restarted"
)

// Notice is a side effect of Apply that the views must surface.
type Notice interface{ isNotice() }

// Alert is the blocking, dismiss-only channel. It never touches Modal.
type Alert struct {
	Text string
}

func (Alert) isNotice() {}

func winnerAlert(winner string) Alert {
	return Alert{Text: fmt.Sprintf("%s has won the game!", winner)}
}

// showModal overwrites whatever modal is pending; there is no queue.
func showModal(s State, title, body string) State {
	s.Modal = Modal{Visible: true, Title: title, Body: body}
	return s
}

func dismissModal(s State) State {
	s.Modal.Visible = false
	return s
}
