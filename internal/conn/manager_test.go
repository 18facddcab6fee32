package conn

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect4/tui/internal/protocol"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

const testGameFrame = `{
	"type": "game_start",
	"game": {
		"id": "g1",
		"player1": {"id": "p1", "username": "alice", "piece": 1},
		"player2": {"id": "p2", "username": "bob", "piece": 2},
		"board": [[0,0,0],[0,0,0]],
		"current_turn": 1,
		"is_bot": false
	}
}`

// gameServer is a minimal stand-in for the real server: it records who
// connected and what they sent, and lets tests push raw frames back.
type gameServer struct {
	srv     *httptest.Server
	inbound chan map[string]any

	mu        sync.Mutex
	conns     []*websocket.Conn
	usernames []string
}

func newGameServer(t *testing.T) *gameServer {
	t.Helper()
	gs := &gameServer{inbound: make(chan map[string]any, 16)}
	gs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		gs.mu.Lock()
		gs.conns = append(gs.conns, ws)
		gs.usernames = append(gs.usernames, r.URL.Query().Get("username"))
		gs.mu.Unlock()

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var msg map[string]any
			if json.Unmarshal(data, &msg) == nil {
				gs.inbound <- msg
			}
		}
	}))
	t.Cleanup(gs.srv.Close)
	return gs
}

func (gs *gameServer) connCount() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.conns)
}

func (gs *gameServer) conn(t *testing.T, i int) *websocket.Conn {
	t.Helper()
	require.Eventually(t, func() bool { return gs.connCount() > i },
		time.Second, 10*time.Millisecond, "server never saw connection %d", i)
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.conns[i]
}

func (gs *gameServer) username(t *testing.T, i int) string {
	t.Helper()
	gs.conn(t, i)
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.usernames[i]
}

func (gs *gameServer) push(t *testing.T, i int, raw string) {
	t.Helper()
	require.NoError(t, gs.conn(t, i).WriteMessage(websocket.TextMessage, []byte(raw)))
}

func newTestManager(t *testing.T, serverURL string) *Manager {
	t.Helper()
	m, err := NewManager(serverURL, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestOpenBindsIdentity(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	gen, err := m.Open("alice")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, Connected, m.State())
	assert.Equal(t, "alice", m.Identity())
	assert.Equal(t, "alice", gs.username(t, 0))
}

func TestOpenEmptyIdentityOnlyReleases(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	_, err := m.Open("alice")
	require.NoError(t, err)

	gen, err := m.Open("")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), gen)
	assert.Equal(t, Disconnected, m.State())
	assert.Empty(t, m.Identity())
	assert.Equal(t, 1, gs.connCount(), "no new connection for an empty identity")
}

func TestOpenDialFailure(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)
	gs.srv.Close()

	_, err := m.Open("alice")

	assert.Error(t, err)
	assert.Equal(t, Disconnected, m.State())
}

func TestNewManagerRejectsBadScheme(t *testing.T) {
	_, err := NewManager("ftp://example.com", zap.NewNop())
	assert.Error(t, err)
}

func TestSendDeliversOutbound(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	_, err := m.Open("alice")
	require.NoError(t, err)

	m.Send(protocol.NewFindMatch())

	select {
	case msg := <-gs.inbound:
		assert.Equal(t, "find_match", msg["type"])
	case <-time.After(time.Second):
		t.Fatal("server never received the message")
	}
}

func TestSendWhileDisconnectedIsCountedNoop(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	assert.NotPanics(t, func() {
		m.Send(protocol.NewFindMatch())
		m.Send(protocol.NewMakeMove(3))
	})
	assert.Equal(t, 2, m.DroppedSends())
}

func TestReadNextDecodesEvents(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	gen, err := m.Open("alice")
	require.NoError(t, err)

	gs.push(t, 0, testGameFrame)

	readGen, ev, err := m.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, gen, readGen)

	start, ok := ev.(protocol.GameStart)
	require.True(t, ok, "expected GameStart, got %T", ev)
	assert.Equal(t, "g1", start.Game.ID)
}

func TestReadNextSkipsUndecodableFrames(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	_, err := m.Open("alice")
	require.NoError(t, err)

	gs.push(t, 0, `not even json`)
	gs.push(t, 0, `{"type":"matchmaking_update"}`)
	gs.push(t, 0, `{"type":"error","message":"slow down"}`)

	_, ev, err := m.ReadNext()
	require.NoError(t, err)

	serr, ok := ev.(protocol.ServerError)
	require.True(t, ok, "expected ServerError, got %T", ev)
	assert.Equal(t, "slow down", serr.Message)
}

func TestReadNextWithoutConnection(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	_, _, err := m.ReadNext()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestServerCloseFlipsState(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	gen, err := m.Open("alice")
	require.NoError(t, err)

	require.NoError(t, gs.conn(t, 0).Close())

	readGen, _, err := m.ReadNext()
	assert.Error(t, err)
	assert.Equal(t, gen, readGen)
	assert.Equal(t, Disconnected, m.State())
}

// Changing identity must tear the old connection down before the new one
// exists, and readers must be able to tell the two connections apart.
func TestIdentityChangeTearsDownFirst(t *testing.T) {
	gs := newGameServer(t)
	m := newTestManager(t, gs.srv.URL)

	gen1, err := m.Open("alice")
	require.NoError(t, err)

	// A read started against the first connection ends once it is replaced,
	// reporting the old generation.
	type readResult struct {
		gen uint64
		err error
	}
	oldRead := make(chan readResult, 1)
	go func() {
		g, _, err := m.ReadNext()
		oldRead <- readResult{gen: g, err: err}
	}()
	// Let the reader park on the first connection before replacing it.
	time.Sleep(50 * time.Millisecond)

	gen2, err := m.Open("bob")
	require.NoError(t, err)

	assert.Greater(t, gen2, gen1)
	assert.Equal(t, Connected, m.State())
	assert.Equal(t, "bob", m.Identity())
	assert.Equal(t, "bob", gs.username(t, 1))

	select {
	case r := <-oldRead:
		assert.Error(t, r.err)
		assert.Equal(t, gen1, r.gen)
	case <-time.After(time.Second):
		t.Fatal("read on the replaced connection never ended")
	}

	// Events now flow from the new connection under the new generation.
	gs.push(t, 1, testGameFrame)
	readGen, ev, err := m.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, gen2, readGen)
	assert.IsType(t, protocol.GameStart{}, ev)
}
