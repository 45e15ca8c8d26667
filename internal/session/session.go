package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrStopped = errors.New("session stopped")

type Msg interface{ isSessionMsg() }

// Inbound carries an event the transport decoded.
type Inbound struct {
	Event Event
}

func (Inbound) isSessionMsg() {}

// Intent carries a user action: it is emitted to the server, then applied.
type Intent struct {
	Event Event
}

func (Intent) isSessionMsg() {}

// Subscribe registers a view. Outbox is closed when the view unsubscribes or
// the session stops.
type Subscribe struct {
	ID     string
	Outbox chan Update // where this view wants to receive updates
}

func (Subscribe) isSessionMsg() {}

type Unsubscribe struct{ ID string }

func (Unsubscribe) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// GetState asks for a View. Reply must have room for one value; a reply that
// would block is dropped.
type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

// Update is pushed to every subscriber after each applied event.
type Update struct {
	Version int
	State   State
	Notices []Notice
}

type View struct {
	Version        int
	NumSubscribers int
	State          State
}

// Session owns State. Everything that reads or changes it goes through the
// inbox and runs on one goroutine, in arrival order.
type Session struct {
	inbox     chan Msg
	state     State
	version   int
	subs      map[string]*subscriber
	transport Transport
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	wg        sync.WaitGroup
}

// New registers the inbound handlers on t and starts the loop. Register
// before t connects so no early push is missed.
func New(parent context.Context, t Transport, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:     make(chan Msg, 64),
		state:     NewState(),
		subs:      make(map[string]*subscriber),
		transport: t,
		log:       log.Named("session"),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	s.attach(t)

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Inbound:
				s.apply(msg.Event)

			case Intent:
				s.emit(msg.Event)
				s.apply(msg.Event)

			case Subscribe:
				if _, ok := s.subs[msg.ID]; ok {
					s.log.Warn("duplicate subscriber ignored", zap.String("subscriber", msg.ID))
					continue
				}
				sub := newSubscriber(msg.Outbox)
				s.subs[msg.ID] = sub
				s.wg.Add(1)
				go func() {
					defer s.wg.Done()
					sub.run()
				}()
				sub.put(Update{Version: s.version, State: s.state.Clone()})

			case Unsubscribe:
				if sub, ok := s.subs[msg.ID]; ok {
					sub.stop()
					delete(s.subs, msg.ID)
				}

			case GetState:
				v := View{
					Version:        s.version,
					NumSubscribers: len(s.subs),
					State:          s.state.Clone(),
				}
				select {
				case msg.Reply <- v:
				default:
					s.log.Warn("snapshot reply dropped, reply channel not ready")
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) apply(ev Event) {
	notices, next, err := Apply(s.state, ev)
	if err != nil {
		s.log.Warn("event rejected", zap.String("event", eventName(ev)), zap.Error(err))
		return
	}
	s.state = next
	s.version++
	s.log.Debug("state advanced",
		zap.String("event", eventName(ev)),
		zap.Int("version", s.version),
		zap.String("page", string(next.Page)),
		zap.String("game_id", next.GameID),
		zap.String("color", string(next.Color)),
	)
	for _, n := range notices {
		if a, ok := n.(Alert); ok {
			s.log.Info("alert", zap.String("text", a.Text))
		}
	}
	s.broadcast(Update{Version: s.version, State: next, Notices: notices})
}

func (s *Session) emit(ev Event) {
	name, payload, ok := Outbound(ev)
	if !ok {
		return
	}
	if err := s.transport.Emit(name, payload); err != nil {
		s.log.Warn("emit failed", zap.String("event", string(name)), zap.Error(err))
	}
}

func (s *Session) broadcast(u Update) {
	for _, sub := range s.subs {
		sub.put(Update{Version: u.Version, State: u.State.Clone(), Notices: u.Notices})
	}
}

func (s *Session) shutdown() {
	for id, sub := range s.subs {
		sub.stop()
		delete(s.subs, id)
	}
	s.cancel()
	s.wg.Wait() // every outbox is closed once this returns
}

func (s *Session) post(m Msg) error {
	if s.ctx.Err() != nil {
		return ErrStopped
	}
	select {
	case <-s.ctx.Done():
		return ErrStopped
	case s.inbox <- m:
		return nil
	}
}

// Inbox is exposed so tests and the transport adapter can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) Actions() Actions { return Actions{s: s} }

func (s *Session) Subscribe(id string, out chan Update) error {
	return s.post(Subscribe{ID: id, Outbox: out})
}

func (s *Session) Unsubscribe(id string) error {
	return s.post(Unsubscribe{ID: id})
}

func (s *Session) Snapshot(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.post(GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (s *Session) Stop() { s.cancel() }

func (s *Session) Done() <-chan struct{} { return s.done }

func eventName(ev Event) string {
	return fmt.Sprintf("%T", ev)
}
