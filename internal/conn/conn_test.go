package conn

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/checkers-client/internal/protocol"
	"github.com/DoyleJ11/checkers-client/internal/wstest"
)

const timeout = 2 * time.Second

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	opts := DefaultOptions()
	opts.URL = url
	opts.PlayerName = "ada"
	c := New(opts, zap.NewNop())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func connect(t *testing.T, c *Client) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, c.Connect(ctx))
}

func recvData(t *testing.T, ch <-chan json.RawMessage, within time.Duration) json.RawMessage {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(within):
		t.Fatalf("timed out waiting for handler")
		return nil // unreachable
	}
}

func TestConnect_OnlyOnce(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())
	connect(t, c)
	_ = srv.Accept(t, timeout)

	err := c.Connect(context.Background())
	require.ErrorIs(t, err, ErrAlreadyConnected)
	srv.ExpectNoPeer(t, 200*time.Millisecond)
}

func TestConnect_SendsIdentity(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())
	connect(t, c)
	peer := srv.Accept(t, timeout)

	assert.Equal(t, c.ID(), peer.Query.Get("client_id"))
	_, err := uuid.Parse(peer.Query.Get("client_id"))
	assert.NoError(t, err)
	assert.Equal(t, "ada", peer.Query.Get("name"))
}

func TestConnect_FailedDialIsFinal(t *testing.T) {
	srv := wstest.NewServer(t)
	url := srv.URL()
	c := newClient(t, url+"/nope")

	require.Error(t, c.Connect(context.Background()))
	require.ErrorIs(t, c.Connect(context.Background()), ErrAlreadyConnected)
	require.ErrorIs(t, c.Emit(protocol.EventLeaveGame, nil), ErrClosed)
}

func TestEmit_BeforeConnect(t *testing.T) {
	c := New(DefaultOptions(), zap.NewNop())
	require.ErrorIs(t, c.Emit(protocol.EventJoinGame, "g1"), ErrNotConnected)
}

func TestEmit_ReachesServer(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())
	connect(t, c)
	peer := srv.Accept(t, timeout)

	require.NoError(t, c.Emit(protocol.EventJoinGame, "g1"))
	require.NoError(t, c.Emit(protocol.EventLeaveGame, nil))

	env := peer.Expect(t, timeout)
	assert.Equal(t, protocol.EventJoinGame, env.Event)
	assert.JSONEq(t, `"g1"`, string(env.Data))

	env = peer.Expect(t, timeout)
	assert.Equal(t, protocol.EventLeaveGame, env.Event)
	assert.Empty(t, env.Data)
}

func TestOn_DispatchesByName(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())

	games := make(chan json.RawMessage, 1)
	winner := make(chan json.RawMessage, 1)
	c.On(protocol.EventGames, func(d json.RawMessage) { games <- d })
	c.On(protocol.EventWinner, func(d json.RawMessage) { winner <- d })
	connect(t, c)
	peer := srv.Accept(t, timeout)

	peer.SendRaw(t, `{"event":"mystery","data":1}`)
	peer.SendRaw(t, `garbage`)
	peer.Send(t, protocol.EventWinner, "red")
	peer.Send(t, protocol.EventGames, []protocol.Game{{ID: "g1"}})

	assert.JSONEq(t, `"red"`, string(recvData(t, winner, timeout)))
	var got []protocol.Game
	require.NoError(t, json.Unmarshal(recvData(t, games, timeout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].ID)
}

func TestDisconnect_FiresOnceAndNeverRedials(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())

	var calls atomic.Int32
	fired := make(chan error, 4)
	c.OnDisconnect(func(err error) {
		calls.Add(1)
		fired <- err
	})
	connect(t, c)
	peer := srv.Accept(t, timeout)

	peer.Drop()

	select {
	case err := <-fired:
		assert.Error(t, err)
	case <-time.After(timeout):
		t.Fatalf("disconnect handler never ran")
	}

	select {
	case <-c.Done():
	case <-time.After(timeout):
		t.Fatalf("client not marked closed")
	}
	require.ErrorIs(t, c.Emit(protocol.EventChatMessage, "hello?"), ErrClosed)

	srv.ExpectNoPeer(t, 300*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClose_LocalCloseIsNotADisconnect(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())

	fired := make(chan error, 1)
	c.OnDisconnect(func(err error) { fired <- err })
	connect(t, c)
	peer := srv.Accept(t, timeout)

	_ = c.Close()

	select {
	case <-peer.Closed():
	case <-time.After(timeout):
		t.Fatalf("server never saw the close")
	}
	select {
	case err := <-fired:
		t.Fatalf("disconnect handler ran on local close: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCancelledContext_IsNotADisconnect(t *testing.T) {
	srv := wstest.NewServer(t)
	c := newClient(t, srv.URL())

	fired := make(chan error, 1)
	c.OnDisconnect(func(err error) { fired <- err })

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Connect(ctx))
	_ = srv.Accept(t, timeout)

	cancel()

	select {
	case <-c.Done():
	case <-time.After(timeout):
		t.Fatalf("client did not shut down")
	}
	select {
	case err := <-fired:
		t.Fatalf("disconnect handler ran on shutdown: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestClose_WhileDialingWins(t *testing.T) {
	srv := wstest.NewServer(t)
	release := srv.HoldUpgrades()
	t.Cleanup(release)
	c := newClient(t, srv.URL())

	result := make(chan error, 1)
	go func() { result <- c.Connect(context.Background()) }()

	require.Eventually(t, func() bool {
		return c.state.Load() == stateDialing
	}, timeout, 5*time.Millisecond)
	require.NoError(t, c.Close())
	release()

	select {
	case err := <-result:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(timeout):
		t.Fatalf("Connect did not return")
	}

	peer := srv.Accept(t, timeout)
	select {
	case <-peer.Closed():
	case <-time.After(timeout):
		t.Fatalf("socket dialed after Close was left open")
	}
	assert.Equal(t, stateClosed, c.state.Load())
	require.ErrorIs(t, c.Emit(protocol.EventJoinGame, "g1"), ErrClosed)
}
