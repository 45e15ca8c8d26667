package session

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
)

// Transport is what the session needs from the connection: named inbound
// handlers, one disconnect handler, and fire-and-forget emits.
type Transport interface {
	On(event protocol.Event, h func(data json.RawMessage))
	OnDisconnect(h func(err error))
	Emit(event protocol.Event, payload any) error
}

// attach forwards transport events into the inbox. It decodes and nothing
// more; the rules live in Apply.
func (s *Session) attach(t Transport) {
	t.On(protocol.EventGames, func(data json.RawMessage) {
		s.receive(GamesBroadcast{Games: decodeOr[[]protocol.Game](s.log, protocol.EventGames, data)})
	})
	t.On(protocol.EventGameCreated, func(data json.RawMessage) {
		s.receive(GameCreated{GameID: decodeOr[string](s.log, protocol.EventGameCreated, data)})
	})
	t.On(protocol.EventColor, func(data json.RawMessage) {
		s.receive(ColorAssigned{Color: decodeOr[Color](s.log, protocol.EventColor, data)})
	})
	t.On(protocol.EventEndGame, func(json.RawMessage) {
		s.receive(GameEnded{})
	})
	t.On(protocol.EventWinner, func(data json.RawMessage) {
		s.receive(WinnerAnnounced{Winner: decodeOr[string](s.log, protocol.EventWinner, data)})
	})
	t.OnDisconnect(func(err error) {
		s.receive(Disconnected{Err: err})
	})
}

func (s *Session) receive(ev Event) {
	if err := s.post(Inbound{Event: ev}); err != nil {
		s.log.Debug("inbound dropped", zap.String("event", eventName(ev)), zap.Error(err))
	}
}

// decodeOr never fails: a missing or malformed payload becomes the zero value.
func decodeOr[T any](log *zap.Logger, event protocol.Event, data json.RawMessage) T {
	var v T
	if len(data) == 0 {
		return v
	}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("malformed payload", zap.String("event", string(event)), zap.Error(err))
		var zero T
		return zero
	}
	return v
}
