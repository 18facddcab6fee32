package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/connect4/tui/internal/conn"
	"github.com/connect4/tui/internal/model"
	"github.com/connect4/tui/internal/session"
)

const (
	pieceGlyph = "●"
	emptyGlyph = "·"
)

func (m Model) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(m.theme.Primary).
		Bold(true).
		Render("4 IN A ROW")

	if m.identity == "" {
		b.WriteString(title + "\n\n")
		b.WriteString(m.input.View() + "\n")
		if m.loginErr != "" {
			b.WriteString(m.errorStyle().Render(m.loginErr) + "\n")
		}
		b.WriteString("\n" + m.viewLeaderboard())
		b.WriteString(m.helpStyle().Render("enter: start playing · ctrl+c: quit"))
		return b.String()
	}

	b.WriteString(title + "  " + m.viewHeader() + "\n")
	if m.notice != "" {
		b.WriteString(m.errorStyle().Render(m.notice) + "\n")
	}
	b.WriteString("\n")

	switch m.state.Status {
	case session.StatusIdle:
		b.WriteString(m.textStyle().Render("Ready when you are.") + "\n")

	case session.StatusSearching:
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			m.spin.View(),
			m.textStyle().Render(m.state.Message),
			m.subtleStyle().Render(fmt.Sprintf("(%ds)", m.state.SearchSeconds))))

	case session.StatusPlaying, session.StatusFinished:
		if m.state.Message != "" {
			b.WriteString(m.textStyle().Render(m.state.Message) + "\n")
		}
		if m.state.Status == session.StatusPlaying {
			b.WriteString(m.viewTurn() + "\n")
		}
		b.WriteString("\n" + m.viewBoard() + "\n")
	}

	b.WriteString("\n" + m.viewLeaderboard())
	b.WriteString(m.helpStyle().Render(m.helpLine()))
	return b.String()
}

func (m Model) viewHeader() string {
	player := m.subtleStyle().Render("Player: ") + m.textStyle().Render(m.identity)

	indicator := lipgloss.NewStyle().Foreground(m.theme.Error)
	label := "offline"
	switch m.network.State() {
	case conn.Connected:
		indicator = indicator.Foreground(m.theme.Good)
		label = "online"
	case conn.Connecting:
		indicator = indicator.Foreground(m.theme.Warn)
		label = "connecting"
	}
	return player + "  " + indicator.Render("● "+label)
}

func (m Model) viewTurn() string {
	g := m.state.Game
	if g == nil {
		return ""
	}
	current := g.PlayerWithPiece(g.CurrentTurn)
	if current == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(m.pieceColor(g.CurrentTurn))
	if current.Username == m.identity {
		return style.Render("Your turn") +
			m.subtleStyle().Render(" — press 1-"+fmt.Sprint(g.Columns())+" to drop")
	}
	return style.Render(current.Username + "'s turn")
}

// viewBoard renders the latest snapshot. It is a pure function of the
// snapshot; clicking a column is the digit row above the grid.
func (m Model) viewBoard() string {
	g := m.state.Game
	if g == nil {
		return ""
	}

	boardStyle := lipgloss.NewStyle().Foreground(m.theme.Board)
	var b strings.Builder

	b.WriteString(" ")
	for col := 1; col <= g.Columns(); col++ {
		b.WriteString(m.subtleStyle().Render(fmt.Sprintf(" %d ", col)))
	}
	b.WriteString("\n")

	for _, row := range g.Board {
		b.WriteString(boardStyle.Render("▕"))
		for _, cell := range row {
			b.WriteString(" " + m.cellView(cell) + " ")
		}
		b.WriteString(boardStyle.Render("▏") + "\n")
	}
	b.WriteString(boardStyle.Render(" " + strings.Repeat("▔", g.Columns()*3)))
	return b.String()
}

func (m Model) cellView(cell int) string {
	switch cell {
	case model.PieceOne, model.PieceTwo:
		return lipgloss.NewStyle().Foreground(m.pieceColor(cell)).Render(pieceGlyph)
	default:
		return m.subtleStyle().Render(emptyGlyph)
	}
}

func (m Model) pieceColor(piece int) lipgloss.Color {
	if piece == model.PieceTwo {
		return m.theme.PieceTwo
	}
	return m.theme.PieceOne
}

func (m Model) viewLeaderboard() string {
	if !m.showLB {
		return ""
	}
	header := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("Leaderboard")
	if m.lbErr != nil {
		return header + "\n" + m.subtleStyle().Render("unavailable") + "\n\n"
	}
	if len(m.entries) == 0 {
		return header + "\n" + m.subtleStyle().Render("no games played yet") + "\n\n"
	}
	return header + "\n" + m.lbTable.View() + "\n\n"
}

func (m Model) helpLine() string {
	switch m.state.Status {
	case session.StatusIdle:
		return "f: find match · l: leaderboard · t: theme · esc: logout · q: quit"
	case session.StatusSearching:
		return "l: leaderboard · t: theme · esc: logout · q: quit"
	case session.StatusPlaying:
		return "1-9: drop piece · l: leaderboard · esc: logout · q: quit"
	default:
		return "p: play again · l: leaderboard · esc: logout · q: quit"
	}
}

func (m Model) textStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Text)
}

func (m Model) subtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Subtle)
}

func (m Model) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Error)
}

func (m Model) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Subtle).Faint(true)
}
