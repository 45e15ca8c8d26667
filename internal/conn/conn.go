package conn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
)

var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
	ErrClosed           = errors.New("connection closed")
)

type Options struct {
	URL          string
	PlayerName   string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration // 0 disables keepalive pings
	OutboxSize   int
	ReadLimit    int64
}

func DefaultOptions() Options {
	return Options{
		URL:          "ws://localhost:4000/ws",
		DialTimeout:  10 * time.Second,
		WriteTimeout: 3 * time.Second,
		PingInterval: 20 * time.Second,
		OutboxSize:   8,
		ReadLimit:    1 << 20,
	}
}

const (
	stateIdle int32 = iota
	stateDialing
	stateOpen
	stateClosed
)

// Client is the one connection a process holds. Connect works once; after
// the socket is lost the client stays closed and never redials.
type Client struct {
	opts Options
	id   string
	log  *zap.Logger

	mu           sync.RWMutex
	handlers     map[protocol.Event]func(json.RawMessage)
	onDisconnect func(error)

	state     atomic.Int32
	ws        *websocket.Conn
	outbox    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func New(opts Options, log *zap.Logger) *Client {
	def := DefaultOptions()
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = def.DialTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = def.WriteTimeout
	}
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = def.OutboxSize
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = def.ReadLimit
	}
	id := uuid.NewString()
	return &Client{
		opts:     opts,
		id:       id,
		log:      log.Named("conn").With(zap.String("client_id", id)),
		handlers: make(map[protocol.Event]func(json.RawMessage)),
		outbox:   make(chan []byte, opts.OutboxSize),
		closed:   make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// On registers the handler for one inbound event name, replacing any earlier
// one. Handlers run on the read goroutine, one frame at a time.
func (c *Client) On(event protocol.Event, h func(data json.RawMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
}

// OnDisconnect sets the handler run exactly once when the socket is lost.
// It does not run when the client itself closes.
func (c *Client) OnDisconnect(h func(err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = h
}

func (c *Client) Connect(ctx context.Context) error {
	if !c.state.CompareAndSwap(stateIdle, stateDialing) {
		return ErrAlreadyConnected
	}

	target, err := c.dialURL()
	if err != nil {
		c.markClosed()
		return err
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.opts.DialTimeout)
	defer cancel()
	ws, _, err := websocket.Dial(dialCtx, target, nil)
	if err != nil {
		c.markClosed()
		return fmt.Errorf("dial %s: %w", c.opts.URL, err)
	}
	ws.SetReadLimit(c.opts.ReadLimit)

	runCtx, runCancel := context.WithCancel(ctx)
	c.ws = ws
	c.cancel = runCancel
	if !c.state.CompareAndSwap(stateDialing, stateOpen) {
		// Close ran while we were dialing.
		runCancel()
		_ = ws.CloseNow()
		return ErrClosed
	}
	c.log.Info("connected", zap.String("url", c.opts.URL))

	c.wg.Add(2)
	go c.readLoop(runCtx)
	go c.writeLoop(runCtx)
	if c.opts.PingInterval > 0 {
		c.wg.Add(1)
		go c.pingLoop(runCtx)
	}
	return nil
}

// Emit queues one frame for the writer and returns. Delivery is not
// confirmed; a failed write shows up as a disconnect.
func (c *Client) Emit(event protocol.Event, payload any) error {
	switch c.state.Load() {
	case stateIdle, stateDialing:
		return ErrNotConnected
	case stateClosed:
		return ErrClosed
	}

	frame, err := protocol.Encode(event, payload)
	if err != nil {
		return err
	}
	select {
	case c.outbox <- frame:
		c.log.Debug("outbound", zap.String("event", string(event)))
		return nil
	case <-c.closed:
		return ErrClosed
	}
}

// Close shuts the connection down from this side. Used on process exit.
func (c *Client) Close() error {
	if c.state.Load() != stateOpen {
		c.markClosed()
		return nil
	}
	first := false
	c.closeOnce.Do(func() {
		first = true
		c.state.Store(stateClosed)
		close(c.closed)
	})
	if !first {
		c.wg.Wait()
		return nil
	}

	// The reader sees the handshake fail its Read; closeOnce is already
	// spent so lost stays quiet.
	err := c.ws.Close(websocket.StatusNormalClosure, "bye")
	c.cancel()
	c.wg.Wait()
	return err
}

func (c *Client) Done() <-chan struct{} { return c.closed }

func (c *Client) readLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			c.lost(ctx, fmt.Errorf("read: %w", err))
			return
		}

		env, err := protocol.Decode(data)
		if err != nil {
			c.log.Warn("bad frame", zap.Error(err))
			continue
		}
		c.log.Debug("inbound", zap.String("event", string(env.Event)), zap.Int("bytes", len(data)))

		c.mu.RLock()
		h := c.handlers[env.Event]
		c.mu.RUnlock()
		if h == nil {
			c.log.Warn("no handler for event", zap.String("event", string(env.Event)))
			continue
		}
		h(env.Data)
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case frame := <-c.outbox:
			wctx, cancel := context.WithTimeout(ctx, c.opts.WriteTimeout)
			err := c.ws.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				c.lost(ctx, fmt.Errorf("write: %w", err))
				return
			}
		}
	}
}

func (c *Client) pingLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, c.opts.WriteTimeout)
			err := c.ws.Ping(pctx)
			cancel()
			if err != nil {
				c.lost(ctx, fmt.Errorf("ping: %w", err))
				return
			}
		}
	}
}

// lost tears the socket down after a read, write or ping failure. Only the
// first failure reaches the disconnect handler, and never after a local close.
func (c *Client) lost(ctx context.Context, err error) {
	local := ctx.Err() != nil
	first := false
	c.closeOnce.Do(func() {
		first = true
		c.state.Store(stateClosed)
		close(c.closed)
		_ = c.ws.CloseNow()
		c.cancel()
	})
	if !first || local {
		return
	}

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		c.log.Warn("server closed connection", zap.Error(err))
	default:
		c.log.Warn("connection lost", zap.Error(err))
	}

	c.mu.RLock()
	h := c.onDisconnect
	c.mu.RUnlock()
	if h != nil {
		h(err)
	}
}

func (c *Client) markClosed() {
	c.state.Store(stateClosed)
	c.closeOnce.Do(func() { close(c.closed) })
}

func (c *Client) dialURL() (string, error) {
	u, err := url.Parse(c.opts.URL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	q := u.Query()
	q.Set("client_id", c.id)
	if c.opts.PlayerName != "" {
		q.Set("name", c.opts.PlayerName)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
