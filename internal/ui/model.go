// Package ui is the terminal front end: a bubbletea program that renders
// the session state and turns key presses into user intents. It only ever
// reads the session value; every change goes through the session package's
// transition functions.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/connect4/tui/internal/conn"
	"github.com/connect4/tui/internal/leaderboard"
	"github.com/connect4/tui/internal/model"
	"github.com/connect4/tui/internal/protocol"
	"github.com/connect4/tui/internal/session"
	"github.com/connect4/tui/internal/theme"
)

// Options wires the collaborators into the program.
type Options struct {
	Network         *conn.Manager
	Leaderboard     *leaderboard.Client
	Themes          *theme.Store
	Theme           theme.Theme
	Username        string // prefills the login form
	ShowLeaderboard bool
	Logger          *zap.Logger
}

// Model is the bubbletea model. All session logic lives in the session
// package; Model holds presentation state plus the identity and connection
// generation the presentation is bound to.
type Model struct {
	log     *zap.Logger
	network *conn.Manager
	lb      *leaderboard.Client
	themes  *theme.Store
	theme   theme.Theme

	identity  string
	state     session.State
	gen       uint64
	searchGen int

	input    textinput.Model
	spin     spinner.Model
	lbTable  table.Model
	loginErr string
	notice   string

	entries []model.LeaderboardEntry
	lbErr   error
	showLB  bool

	width  int
	height int
}

// New builds the initial model showing the login form.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your username"
	ti.CharLimit = model.MaxUsernameLen
	ti.Width = model.MaxUsernameLen
	ti.SetValue(opts.Username)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 18},
		{Title: "W", Width: 4},
		{Title: "L", Width: 4},
		{Title: "D", Width: 4},
		{Title: "Total", Width: 6},
	}
	lt := table.New(table.WithColumns(cols), table.WithHeight(8))

	return Model{
		log:     opts.Logger,
		network: opts.Network,
		lb:      opts.Leaderboard,
		themes:  opts.Themes,
		theme:   opts.Theme,
		state:   session.New(),
		input:   ti,
		spin:    sp,
		lbTable: lt,
		showLB:  opts.ShowLeaderboard,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchLeaderboard())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case connOpenedMsg:
		m.gen = msg.gen
		m.notice = ""
		return m, m.waitForEvent()

	case connFailedMsg:
		m.notice = fmt.Sprintf("Could not connect: %v", msg.err)
		m.log.Warn("connect failed", zap.Error(msg.err))
		return m, nil

	case connClosedMsg:
		// Deliberately leaves status and snapshot untouched: a player who
		// loses the connection mid-game keeps the stale board with the
		// offline indicator. Only a fresh login dials again.
		if msg.gen != m.gen {
			return m, nil
		}
		m.log.Info("connection lost", zap.Uint64("gen", msg.gen))
		return m, nil

	case serverEventMsg:
		if m.identity == "" || msg.gen != m.gen {
			// Buffered by a connection that has since been torn down,
			// or decoded just before a logout cleared the identity.
			m.log.Debug("discarding stale event",
				zap.Uint64("gen", msg.gen), zap.Uint64("current", m.gen))
			return m, nil
		}
		return m.handleServerEvent(msg.event)

	case searchTickMsg:
		if msg.gen != m.searchGen || m.state.Status != session.StatusSearching {
			// A tick from a previous search phase; let its chain die.
			return m, nil
		}
		m.state = session.Tick(m.state)
		return m, searchTick(m.searchGen)

	case spinner.TickMsg:
		if m.state.Status != session.StatusSearching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case leaderboardMsg:
		m.entries = msg.entries
		m.lbErr = msg.err
		if msg.err != nil {
			m.log.Warn("leaderboard fetch failed", zap.Error(msg.err))
		}
		m.lbTable.SetRows(leaderboardRows(msg.entries))
		return m, nil
	}

	if m.identity == "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleServerEvent(ev protocol.Event) (tea.Model, tea.Cmd) {
	before := m.state.Finishes
	m.state = session.ApplyEvent(m.state, m.identity, ev)

	cmds := []tea.Cmd{m.waitForEvent()}
	if m.state.Finishes != before {
		cmds = append(cmds, m.fetchLeaderboard())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.network.Close()
		return m, tea.Quit
	}

	if m.identity == "" {
		return m.handleLoginKey(msg)
	}

	switch msg.String() {
	case "q":
		m.network.Close()
		return m, tea.Quit

	case "esc":
		return m.logout()

	case "l":
		m.showLB = !m.showLB
		if m.showLB {
			return m, m.fetchLeaderboard()
		}
		return m, nil

	case "t":
		next := theme.Next(m.theme.Key)
		if th, ok := theme.Lookup(next); ok {
			m.theme = th
			if err := m.themes.Save(next); err != nil {
				m.log.Warn("persist theme", zap.Error(err))
			}
		}
		return m, nil
	}

	switch m.state.Status {
	case session.StatusIdle:
		if key := msg.String(); key == "f" || key == "enter" {
			return m.findMatch()
		}

	case session.StatusPlaying:
		if col, ok := columnKey(msg.String()); ok {
			if session.CanSubmitMove(m.state, m.identity, col) {
				m.network.Send(protocol.NewMakeMove(col))
			} else {
				m.log.Debug("move suppressed", zap.Int("column", col))
			}
		}

	case session.StatusFinished:
		if key := msg.String(); key == "p" || key == "enter" {
			// Back to idle; the connection stays open.
			m.state = session.ApplyIntent(m.state, session.IntentPlayAgain)
		}
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name, err := model.NormalizeUsername(m.input.Value())
		if err != nil {
			m.loginErr = loginErrorText(err)
			return m, nil
		}
		m.identity = name
		m.loginErr = ""
		m.state = session.New()
		return m, tea.Batch(m.openConn(name), m.fetchLeaderboard())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) findMatch() (tea.Model, tea.Cmd) {
	m.state = session.ApplyIntent(m.state, session.IntentFindMatch)
	m.searchGen++
	// Dropped silently-but-logged by the manager when offline; the session
	// still shows Searching, matching the observed client.
	m.network.Send(protocol.NewFindMatch())
	return m, tea.Batch(searchTick(m.searchGen), m.spin.Tick)
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.state = session.ApplyIntent(m.state, session.IntentLogout)
	m.identity = ""
	// Empty identity releases the connection without dialing a new one.
	m.network.Open("")
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

// columnKey maps the digit keys to board columns.
func columnKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

func loginErrorText(err error) string {
	switch err {
	case model.ErrUsernameTooLong:
		return fmt.Sprintf("Name must be at most %d characters", model.MaxUsernameLen)
	default:
		return "Please enter a username"
	}
}

func leaderboardRows(entries []model.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Username,
			fmt.Sprintf("%d", e.Wins),
			fmt.Sprintf("%d", e.Losses),
			fmt.Sprintf("%d", e.Draws),
			fmt.Sprintf("%d", e.TotalGames),
		})
	}
	return rows
}
