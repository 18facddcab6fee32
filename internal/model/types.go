package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Board cell values as sent by the server.
const (
	PieceNone = 0
	PieceOne  = 1
	PieceTwo  = 2
)

// MaxUsernameLen bounds the display name chosen at login.
const MaxUsernameLen = 32

var (
	ErrEmptyUsername   = errors.New("username is empty")
	ErrUsernameTooLong = errors.New("username is too long")
)

// Player describes one side of a game as the server sees it.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Piece    int    `json:"piece"` // 1 or 2
}

// Game is the full board+metadata snapshot the server pushes on every
// relevant event. The client never edits cells; each update replaces the
// previous snapshot wholesale.
type Game struct {
	ID          string  `json:"id"`
	Player1     *Player `json:"player1"`
	Player2     *Player `json:"player2"` // nil while waiting for an opponent
	Board       [][]int `json:"board"`
	CurrentTurn int     `json:"current_turn"`
	IsBot       bool    `json:"is_bot"`
}

// PieceOf returns the piece assigned to username, or false when username
// matches neither player of this game.
func (g *Game) PieceOf(username string) (int, bool) {
	if g == nil {
		return 0, false
	}
	if g.Player1 != nil && g.Player1.Username == username {
		return g.Player1.Piece, true
	}
	if g.Player2 != nil && g.Player2.Username == username {
		return g.Player2.Piece, true
	}
	return 0, false
}

// PlayerWithPiece returns the player holding piece, or nil.
func (g *Game) PlayerWithPiece(piece int) *Player {
	if g == nil {
		return nil
	}
	if g.Player1 != nil && g.Player1.Piece == piece {
		return g.Player1
	}
	if g.Player2 != nil && g.Player2.Piece == piece {
		return g.Player2
	}
	return nil
}

// Columns returns the board width, 0 for an empty snapshot.
func (g *Game) Columns() int {
	if g == nil || len(g.Board) == 0 {
		return 0
	}
	return len(g.Board[0])
}

// GameResult is the terminal outcome reported in a game_end event.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultDraw GameResult = "draw"
)

// LeaderboardEntry is one row of the server's /api/leaderboard response.
type LeaderboardEntry struct {
	Username   string `json:"username"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Draws      int    `json:"draws"`
	TotalGames int    `json:"total_games"`
}

// NormalizeUsername trims the raw login input and enforces the non-empty,
// length-bounded identity rules.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyUsername
	}
	if utf8.RuneCountInString(name) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return name, nil
}
