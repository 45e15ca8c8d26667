package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyEvent = errors.New("frame has no event name")

type Event string

// Client -> Server
const (
	EventJoinGame    Event = "join-game"
	EventMovePiece   Event = "move-piece"
	EventLeaveGame   Event = "leave-game"
	EventCreateGame  Event = "create-game"
	EventChatMessage Event = "chat-message"
)

// Server -> Client
const (
	EventGames       Event = "games"
	EventGameCreated Event = "your-game-created"
	EventColor       Event = "color"
	EventEndGame     Event = "end-game"
	EventWinner      Event = "winner"

	// Raised locally on transport loss, never read off the wire.
	EventDisconnect Event = "disconnect"
)

// Inbound lists the server events a client registers handlers for.
var Inbound = []Event{EventGames, EventGameCreated, EventColor, EventEndGame, EventWinner}

type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds a wire frame. A nil payload produces a frame without data.
func Encode(event Event, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode frame: %w", err)
	}
	if env.Event == "" {
		return Envelope{}, ErrEmptyEvent
	}
	return env, nil
}

// Position is a board square as the server addresses it.
type Position struct {
	I int `json:"i"`
	J int `json:"j"`
}

type Move struct {
	SelectedPiece Position `json:"selectedPiece"`
	Destination   Position `json:"destination"`
}
