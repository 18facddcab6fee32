// Package protocol defines the wire envelopes exchanged with the game
// server and decodes inbound frames into a closed set of typed events.
package protocol

import "github.com/connect4/tui/internal/model"

// EventType is the discriminant carried by every inbound frame.
type EventType string

const (
	EventGameStart EventType = "game_start"
	EventMoveMade  EventType = "move_made"
	EventGameEnd   EventType = "game_end"
	EventRejoined  EventType = "rejoin_success"
	EventError     EventType = "error"
)

// Event is a decoded server push. The unexported method keeps the variant
// set closed: a new server event type shows up here first, and every switch
// over Event is checkable for exhaustiveness.
type Event interface {
	Type() EventType
	isEvent()
}

// GameStart announces a new match, bot or human.
type GameStart struct {
	Game *model.Game
}

// MoveMade carries the snapshot after a board change.
type MoveMade struct {
	Game *model.Game
}

// GameEnd is the terminal event of a match. Winner is nil on a draw.
type GameEnd struct {
	Game   *model.Game
	Result model.GameResult
	Winner *model.Player
}

// Rejoined is the server's reply to a rejoin request.
type Rejoined struct {
	Game *model.Game
}

// ServerError is a non-fatal problem reported by the server.
type ServerError struct {
	Message string
}

func (GameStart) Type() EventType   { return EventGameStart }
func (MoveMade) Type() EventType    { return EventMoveMade }
func (GameEnd) Type() EventType     { return EventGameEnd }
func (Rejoined) Type() EventType    { return EventRejoined }
func (ServerError) Type() EventType { return EventError }

func (GameStart) isEvent()   {}
func (MoveMade) isEvent()    {}
func (GameEnd) isEvent()     {}
func (Rejoined) isEvent()    {}
func (ServerError) isEvent() {}
