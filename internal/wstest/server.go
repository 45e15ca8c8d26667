// Package wstest runs a scripted checkers server in-process. Tests accept
// the client's socket as a Peer, push server events at it and read what the
// client emitted.
package wstest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
)

type Server struct {
	srv   *httptest.Server
	peers chan *Peer

	mu   sync.Mutex
	hold chan struct{} // while set, upgrades wait on it
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{peers: make(chan *Peer, 8)}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/ws", s.handleWS)
	return r
}

// URL is the websocket endpoint to hand the client.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws"
}

func (s *Server) HTTPURL() string { return s.srv.URL }

// HoldUpgrades parks every incoming handshake until release is called, so a
// test can act while the client is still dialing.
func (s *Server) HoldUpgrades() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	hold := s.hold
	s.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.CloseNow()

	p := &Peer{
		conn:   conn,
		Query:  r.URL.Query(),
		frames: make(chan protocol.Envelope, 32),
		done:   make(chan struct{}),
	}
	defer close(p.done)
	s.peers <- p

	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		env, err := protocol.Decode(data)
		if err != nil {
			continue
		}
		p.frames <- env
	}
}

// Accept waits for the next client socket.
func (s *Server) Accept(t testing.TB, within time.Duration) *Peer {
	t.Helper()
	select {
	case p := <-s.peers:
		t.Cleanup(func() { _ = p.conn.CloseNow() })
		return p
	case <-time.After(within):
		t.Fatalf("timed out waiting for a client to connect")
		return nil // unreachable
	}
}

// ExpectNoPeer fails if any client connects within the window.
func (s *Server) ExpectNoPeer(t testing.TB, within time.Duration) {
	t.Helper()
	select {
	case p := <-s.peers:
		_ = p.conn.CloseNow()
		t.Fatalf("unexpected connection with query %v", p.Query)
	case <-time.After(within):
	}
}

// Peer is the server end of one client socket.
type Peer struct {
	conn   *websocket.Conn
	Query  url.Values
	frames chan protocol.Envelope
	done   chan struct{}
}

func (p *Peer) Send(t testing.TB, event protocol.Event, payload any) {
	t.Helper()
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", event, err)
	}
	p.SendRaw(t, string(frame))
}

func (p *Peer) SendRaw(t testing.TB, frame string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func (p *Peer) Expect(t testing.TB, within time.Duration) protocol.Envelope {
	t.Helper()
	select {
	case env := <-p.frames:
		return env
	case <-time.After(within):
		t.Fatalf("timed out waiting for a client frame")
		return protocol.Envelope{} // unreachable
	}
}

func (p *Peer) ExpectNone(t testing.TB, within time.Duration) {
	t.Helper()
	select {
	case env := <-p.frames:
		t.Fatalf("expected no frame within %v, got %s", within, env.Event)
	case <-time.After(within):
	}
}

// Drop kills the socket without a close handshake, like a crashed server.
func (p *Peer) Drop() { _ = p.conn.CloseNow() }

// Closed is closed once the server side stops reading this socket.
func (p *Peer) Closed() <-chan struct{} { return p.done }
