// Package session is the client-side state machine for one play session.
// It is the sole writer of the externally observed session value: inbound
// server events and local user intents fold into a State through pure
// functions, so every transition is an atomic replacement of the whole
// value and the machine is testable without a live connection.
package session

import (
	"github.com/connect4/tui/internal/model"
	"github.com/connect4/tui/internal/protocol"
)

// Status is the coarse phase of a play session.
type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	default:
		return "idle"
	}
}

// User-facing status lines, matching what the server's web client shows.
const (
	MsgSearching     = "Searching for opponent..."
	MsgBotOpponent   = "Playing against Bot"
	MsgHumanOpponent = "Opponent found! Game started!"
	MsgDraw          = "It's a draw!"
	MsgWon           = "You won!"
	MsgLost          = "You lost!"
)

// State is the complete session value presented to the UI. It is replaced
// wholesale on every transition, never edited in place.
type State struct {
	Status  Status
	Game    *model.Game // latest server snapshot, nil before the first game
	Message string

	// SearchSeconds is the matchmaking timer: counts up while Searching,
	// zero in every other status.
	SearchSeconds int

	// Finishes counts game_end transitions. It only ever grows; observers
	// (the leaderboard widget) refresh whenever it changes.
	Finishes int
}

// New returns the initial, logged-in-but-idle session state.
func New() State {
	return State{Status: StatusIdle}
}

// Intent is a user-originated transition request.
type Intent int

const (
	IntentFindMatch Intent = iota
	IntentPlayAgain
	IntentLogout
)

// ApplyIntent folds a local user intent into the state. Sending the
// matching outbound message is the caller's job; the state machine never
// touches the connection.
func ApplyIntent(s State, in Intent) State {
	switch in {
	case IntentFindMatch:
		s.Status = StatusSearching
		s.Message = MsgSearching
		s.SearchSeconds = 0
	case IntentPlayAgain, IntentLogout:
		s.Status = StatusIdle
		s.Game = nil
		s.Message = ""
		s.SearchSeconds = 0
	}
	return s
}

// ApplyEvent folds one decoded server event into the state. It is total:
// every event variant yields a valid state and no input panics. The
// snapshot is adopted wholesale, so replaying an in-order event is
// harmless.
func ApplyEvent(s State, identity string, ev protocol.Event) State {
	switch ev := ev.(type) {
	case protocol.GameStart:
		s.Game = ev.Game
		s.Status = StatusPlaying
		s.SearchSeconds = 0
		if ev.Game != nil && ev.Game.IsBot {
			s.Message = MsgBotOpponent
		} else {
			s.Message = MsgHumanOpponent
		}

	case protocol.MoveMade:
		// Normally already Playing; if not, adopt it.
		s.Game = ev.Game
		s.Status = StatusPlaying
		s.SearchSeconds = 0

	case protocol.Rejoined:
		s.Game = ev.Game
		s.Status = StatusPlaying
		s.SearchSeconds = 0

	case protocol.GameEnd:
		s.Game = ev.Game
		s.Status = StatusFinished
		s.SearchSeconds = 0
		switch {
		case ev.Result == model.ResultDraw:
			s.Message = MsgDraw
		case ev.Winner != nil && ev.Winner.Username == identity:
			s.Message = MsgWon
		case ev.Winner != nil:
			s.Message = MsgLost
		}
		s.Finishes++

	case protocol.ServerError:
		// Errors never force a status transition.
		s.Message = "Error: " + ev.Message
	}
	return s
}

// Tick advances the matchmaking timer by one second. Outside Searching it
// is a no-op, keeping the timer at zero in every other status.
func Tick(s State) State {
	if s.Status == StatusSearching {
		s.SearchSeconds++
	}
	return s
}
