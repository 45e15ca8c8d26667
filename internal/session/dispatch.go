package session

import "github.com/DoyleJ11/checkers-client/internal/protocol"

// Outbound is the wire half of a user intent. Events without one (server
// pushes, navigation, modal dismissal) report false.
func Outbound(ev Event) (protocol.Event, any, bool) {
	switch e := ev.(type) {
	case JoinRequested:
		return protocol.EventJoinGame, e.GameID, true
	case MoveRequested:
		return protocol.EventMovePiece, e.Move, true
	case LeaveRequested:
		return protocol.EventLeaveGame, nil, true
	case CreateRequested:
		return protocol.EventCreateGame, e.Name, true
	case ChatSent:
		return protocol.EventChatMessage, e.Message, true
	default:
		return "", nil, false
	}
}

// Actions is the handle views get. Every call is fire-and-forget: it queues
// the intent on the session loop and returns. Input is not checked here; the
// server answers bad requests with ordinary events.
type Actions struct {
	s *Session
}

func (a Actions) RequestJoin(gameID string) error {
	return a.s.post(Intent{Event: JoinRequested{GameID: gameID}})
}

func (a Actions) RequestMove(selected, destination protocol.Position) error {
	return a.s.post(Intent{Event: MoveRequested{Move: protocol.Move{
		SelectedPiece: selected,
		Destination:   destination,
	}}})
}

func (a Actions) RequestLeave() error {
	return a.s.post(Intent{Event: LeaveRequested{}})
}

func (a Actions) RequestCreate(name string) error {
	return a.s.post(Intent{Event: CreateRequested{Name: name}})
}

func (a Actions) SendChat(message string) error {
	return a.s.post(Intent{Event: ChatSent{Message: message}})
}

func (a Actions) GoTo(page Page) error {
	return a.s.post(Intent{Event: Navigated{Page: page}})
}

func (a Actions) DismissModal() error {
	return a.s.post(Intent{Event: ModalDismissed{}})
}
