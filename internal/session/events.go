package session

import "github.com/DoyleJ11/checkers-client/internal/protocol"

// Event is anything Apply knows how to fold into State: server pushes and the
// local half of user actions.
type Event interface{ isEvent() }

// Server -> client

type GamesBroadcast struct {
	Games []protocol.Game
}

type GameCreated struct {
	GameID string
}

type ColorAssigned struct {
	Color Color
}

type GameEnded struct{}

type WinnerAnnounced struct {
	Winner string
}

// Disconnected is raised by the transport, not sent by the server.
type Disconnected struct {
	Err error
}

// User intents

type JoinRequested struct {
	GameID string
}

type MoveRequested struct {
	Move protocol.Move
}

type LeaveRequested struct{}

type CreateRequested struct {
	Name string
}

type ChatSent struct {
	Message string
}

// Navigated is the navbar / "create new game" button. Nothing goes on the wire.
type Navigated struct {
	Page Page
}

type ModalDismissed struct{}

func (GamesBroadcast) isEvent()  {}
func (GameCreated) isEvent()     {}
func (ColorAssigned) isEvent()   {}
func (GameEnded) isEvent()       {}
func (WinnerAnnounced) isEvent() {}
func (Disconnected) isEvent()    {}
func (JoinRequested) isEvent()   {}
func (MoveRequested) isEvent()   {}
func (LeaveRequested) isEvent()  {}
func (CreateRequested) isEvent() {}
func (ChatSent) isEvent()        {}
func (Navigated) isEvent()       {}
func (ModalDismissed) isEvent()  {}
