package protocol

// Outbound envelopes mirror the messages the server's websocket handler
// switches on. They are plain structs so the connection manager can marshal
// them as-is.

// FindMatch asks the matchmaker for an opponent.
type FindMatch struct {
	Type string `json:"type"`
}

// MakeMove drops the local player's piece into a column.
type MakeMove struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

// Rejoin asks the server to reattach this connection to a running game.
type Rejoin struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
}

func NewFindMatch() FindMatch {
	return FindMatch{Type: "find_match"}
}

func NewMakeMove(column int) MakeMove {
	return MakeMove{Type: "make_move", Column: column}
}

func NewRejoin(gameID string) Rejoin {
	return Rejoin{Type: "rejoin", GameID: gameID}
}
