// Package conn owns the realtime connection to the game server: one
// websocket per identity, opened on login and torn down on logout or
// identity change. There is no automatic reconnect; a new connection only
// comes from a new login.
package conn

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/connect4/tui/internal/protocol"
)

// State is the connectivity phase shown by the online/offline indicator.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

var (
	// ErrNotConnected is returned by ReadNext when no connection is open.
	ErrNotConnected = errors.New("no open connection")

	// ErrReleased is returned by Open when the connection was torn down
	// while the dial was still in flight.
	ErrReleased = errors.New("connection released during dial")
)

// Manager holds at most one live websocket, bound to the identity it was
// opened with. Every successful open bumps a generation counter; readers
// receive the generation alongside each event so anything buffered from a
// previous connection can be discarded.
type Manager struct {
	log  *zap.Logger
	base url.URL

	// dialMu serializes Open calls so two dials can never race each other.
	dialMu sync.Mutex

	mu       sync.Mutex
	conn     *websocket.Conn
	state    State
	identity string
	gen      uint64
	epoch    uint64 // bumped on every teardown; guards in-flight dials
	dropped  int
}

// NewManager builds a manager dialing serverURL. http(s) schemes are
// mapped to their ws(s) counterparts so one base URL can serve both the
// websocket and the REST endpoints.
func NewManager(serverURL string, log *zap.Logger) (*Manager, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return &Manager{log: log, base: *u}, nil
}

// Open tears down any live connection, then dials a new one authenticated
// by identity (carried as the username query parameter). An empty identity
// means "no connection desired": the teardown still happens, nothing is
// dialed. On success it returns the generation of the new connection.
func (m *Manager) Open(identity string) (uint64, error) {
	m.dialMu.Lock()
	defer m.dialMu.Unlock()

	m.mu.Lock()
	m.closeLocked()
	m.identity = identity
	if identity == "" {
		m.mu.Unlock()
		return 0, nil
	}
	m.state = Connecting
	epoch := m.epoch
	m.mu.Unlock()

	u := m.base
	q := u.Query()
	q.Set("username", identity)
	u.RawQuery = q.Encode()

	ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.epoch == epoch {
			m.state = Disconnected
		}
		return 0, fmt.Errorf("dial %s: %w", u.Host, err)
	}
	if m.epoch != epoch {
		// Torn down while dialing; the fresh connection must not leak.
		ws.Close()
		return 0, ErrReleased
	}

	m.conn = ws
	m.state = Connected
	m.gen++
	m.log.Info("connected",
		zap.String("identity", identity),
		zap.Uint64("gen", m.gen))
	return m.gen, nil
}

// Close releases the live connection, if any. Safe to call repeatedly.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	m.epoch++
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.state = Disconnected
}

// State reports the current connectivity phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the identity the manager is currently bound to.
func (m *Manager) Identity() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Generation returns the generation of the most recent successful open.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// DroppedSends counts messages discarded because no connection was open.
func (m *Manager) DroppedSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Send marshals v and writes it to the live connection. While not
// connected the message is dropped: logged and counted, never an error
// surfaced to the caller.
func (m *Manager) Send(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Connected || m.conn == nil {
		m.dropped++
		m.log.Warn("dropping outbound message, not connected",
			zap.Int("dropped", m.dropped))
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		m.log.Error("marshal outbound message", zap.Error(err))
		return
	}
	if err := m.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		m.log.Error("write outbound message", zap.Error(err))
	}
}

// ReadNext blocks until the next decodable event arrives on the connection
// that was live when the call started. Malformed frames and unknown event
// types are dropped with a diagnostic and the read continues. The returned
// generation tells the caller which connection produced the event.
func (m *Manager) ReadNext() (uint64, protocol.Event, error) {
	m.mu.Lock()
	ws, gen := m.conn, m.gen
	m.mu.Unlock()

	if ws == nil {
		return gen, nil, ErrNotConnected
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			m.mu.Lock()
			if m.conn == ws {
				m.conn = nil
				m.state = Disconnected
			}
			m.mu.Unlock()
			m.log.Info("connection closed", zap.Uint64("gen", gen), zap.Error(err))
			return gen, nil, err
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			m.log.Warn("dropping inbound frame", zap.Error(err))
			continue
		}
		return gen, ev, nil
	}
}
