package terminal

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	colorX = "1" // red
	colorO = "4" // blue

	rowSeparator = "───┼───┼───"
)

// Render draws the board as a 3x3 grid followed by the status line.
// Empty cells show the key that plays them.
func Render(output *termenv.Output, snapshot entity.Snapshot) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString(rowSeparator)
			sb.WriteString("\n")
		}

		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			cells = append(cells, " "+renderCell(output, snapshot, cell)+" ")
		}

		sb.WriteString(strings.Join(cells, "│"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(output.String(snapshot.StatusText).Bold().String())
	sb.WriteString("\n")

	return sb.String()
}

func renderCell(output *termenv.Output, snapshot entity.Snapshot, cell int) string {
	switch snapshot.Game.Board[cell] {
	case entity.PlayerX:
		return output.String(entity.PlayerX).Foreground(output.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return output.String(entity.PlayerO).Foreground(output.Color(colorO)).Bold().String()
	}

	if !snapshot.Playable[cell] {
		return " "
	}

	return output.String(strconv.Itoa(cell + 1)).Faint().String()
}
