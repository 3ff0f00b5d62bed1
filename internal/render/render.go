package render

import (
	"ctchen222/tictactoe/internal/game"
	"fmt"
	"io"
	"strings"
)

const rowSeparator = "---|---|---"

// Renderer writes a text view of a board.
type Renderer struct {
	board *game.Board
	out   io.Writer
}

func New(board *game.Board, out io.Writer) *Renderer {
	return &Renderer{board: board, out: out}
}

// Render writes the current board followed by a blank line.
func (r *Renderer) Render() error {
	if _, err := io.WriteString(r.out, Format(r.board.Board())); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	return nil
}

// Format lays out a board snapshot as rows of cells joined by "|" with a
// separator line between consecutive rows.
func Format(board [][]game.PlayerMark) string {
	var sb strings.Builder
	for i, row := range board {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = " " + cellText(cell) + " "
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
		if i < len(board)-1 {
			sb.WriteString(rowSeparator)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func cellText(mark game.PlayerMark) string {
	if mark == game.None {
		return " "
	}
	return string(mark)
}
