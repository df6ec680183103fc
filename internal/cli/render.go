package cli

import (
	"fmt"
	"strings"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

const (
	emptyMark = '.'
	p1Mark    = 'X'
	p2Mark    = 'O'
	winMark1  = '#'
	winMark2  = '@'
)

func mark(id domain.PlayerID, winning bool) rune {
	switch id {
	case domain.Player1:
		if winning {
			return winMark1
		}
		return p1Mark
	case domain.Player2:
		if winning {
			return winMark2
		}
		return p2Mark
	}
	return emptyMark
}

// RenderBoard draws the grid top row first with column numbers underneath.
// Cells of a winning run are drawn with their own marks.
func RenderBoard(g *domain.GameState) string {
	run := make(map[domain.Cell]bool)
	for _, c := range g.WinningRun() {
		run[c] = true
	}

	var sb strings.Builder
	for row := 0; row < g.Height(); row++ {
		sb.WriteByte('|')
		for col := 0; col < g.Width(); col++ {
			sb.WriteByte(' ')
			sb.WriteRune(mark(g.At(row, col), run[domain.Cell{Row: row, Column: col}]))
		}
		sb.WriteString(" |\n")
	}

	sb.WriteByte(' ')
	for col := 0; col < g.Width(); col++ {
		fmt.Fprintf(&sb, " %d", col%10)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Legend names the marks for each player.
func Legend(g *domain.GameState) string {
	p1, p2 := g.Players()
	return fmt.Sprintf("%c = player 1 (%s), %c = player 2 (%s)", p1Mark, p1.Color, p2Mark, p2.Color)
}

// Describe turns an outcome into one line of text for a human.
func Describe(g *domain.GameState, o domain.Outcome) string {
	color := func(id domain.PlayerID) string {
		if p, ok := g.Player(id); ok {
			return p.Color
		}
		return "?"
	}

	switch o.Kind {
	case domain.OutcomePlaced:
		return fmt.Sprintf("%s played column %d (row %d). %s to move.", color(o.Player), o.Column, o.Row, color(o.Next))
	case domain.OutcomeWin:
		return fmt.Sprintf("%s connects four and wins!", color(o.Player))
	case domain.OutcomeTie:
		return "The board is full. It's a tie."
	case domain.OutcomeColumnFull:
		return fmt.Sprintf("Column %d is full, pick another.", o.Column)
	case domain.OutcomeOutOfRangeColumn:
		return fmt.Sprintf("Column %d is not on the board (0-%d).", o.Column, g.Width()-1)
	case domain.OutcomeGameAlreadyOver:
		return "The game is over. Start a new game."
	}
	return o.String()
}
