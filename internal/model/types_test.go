package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGame() *Game {
	return &Game{
		ID:          "g1",
		Player1:     &Player{ID: "p1", Username: "alice", Piece: 1},
		Player2:     &Player{ID: "p2", Username: "bob", Piece: 2},
		Board:       [][]int{{0, 0, 0, 0}, {0, 1, 2, 0}},
		CurrentTurn: 1,
	}
}

func TestPieceOf(t *testing.T) {
	g := testGame()

	piece, ok := g.PieceOf("alice")
	assert.True(t, ok)
	assert.Equal(t, 1, piece)

	piece, ok = g.PieceOf("bob")
	assert.True(t, ok)
	assert.Equal(t, 2, piece)

	_, ok = g.PieceOf("mallory")
	assert.False(t, ok)

	waiting := &Game{Player1: &Player{Username: "alice", Piece: 1}}
	_, ok = waiting.PieceOf("bob")
	assert.False(t, ok, "player two may be absent while waiting")

	var nilGame *Game
	_, ok = nilGame.PieceOf("alice")
	assert.False(t, ok)
}

func TestPlayerWithPiece(t *testing.T) {
	g := testGame()

	assert.Equal(t, "alice", g.PlayerWithPiece(1).Username)
	assert.Equal(t, "bob", g.PlayerWithPiece(2).Username)
	assert.Nil(t, g.PlayerWithPiece(3))

	var nilGame *Game
	assert.Nil(t, nilGame.PlayerWithPiece(1))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 4, testGame().Columns())
	assert.Equal(t, 0, (&Game{}).Columns())

	var nilGame *Game
	assert.Equal(t, 0, nilGame.Columns())
}

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain", raw: "alice", want: "alice"},
		{name: "trimmed", raw: "  alice \t", want: "alice"},
		{name: "empty", raw: "", wantErr: ErrEmptyUsername},
		{name: "whitespace only", raw: "   ", wantErr: ErrEmptyUsername},
		{name: "at the limit", raw: strings.Repeat("a", MaxUsernameLen), want: strings.Repeat("a", MaxUsernameLen)},
		{name: "over the limit", raw: strings.Repeat("a", MaxUsernameLen+1), wantErr: ErrUsernameTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeUsername(tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
