package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/connect4/tui/internal/model"
	"github.com/connect4/tui/internal/protocol"
)

// Messages produced by the background commands. Everything that can happen
// asynchronously re-enters the program as one of these, so state changes
// only ever happen inside Update.
type (
	connOpenedMsg struct{ gen uint64 }
	connFailedMsg struct{ err error }
	connClosedMsg struct {
		gen uint64
		err error
	}
	serverEventMsg struct {
		gen   uint64
		event protocol.Event
	}
	searchTickMsg  struct{ gen int }
	leaderboardMsg struct {
		entries []model.LeaderboardEntry
		err     error
	}
)

// openConn dials a connection for identity and reports the outcome.
func (m Model) openConn(identity string) tea.Cmd {
	net := m.network
	return func() tea.Msg {
		gen, err := net.Open(identity)
		if err != nil {
			return connFailedMsg{err: err}
		}
		return connOpenedMsg{gen: gen}
	}
}

// waitForEvent blocks on the next decoded server event. One of these runs
// per live connection generation; it re-arms itself from Update until the
// connection goes away.
func (m Model) waitForEvent() tea.Cmd {
	net := m.network
	return func() tea.Msg {
		gen, ev, err := net.ReadNext()
		if err != nil {
			return connClosedMsg{gen: gen, err: err}
		}
		return serverEventMsg{gen: gen, event: ev}
	}
}

// searchTick drives the matchmaking timer while Searching. Each search
// phase gets its own generation so a tick left over from an earlier phase
// cannot revive its chain next to the current one.
func searchTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return searchTickMsg{gen: gen}
	})
}

// fetchLeaderboard loads the standings in the background.
func (m Model) fetchLeaderboard() tea.Cmd {
	lb := m.lb
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := lb.Fetch(ctx)
		return leaderboardMsg{entries: entries, err: err}
	}
}
