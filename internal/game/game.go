package game

import (
	"ctchen222/tictactoe/internal/apperror"
	"fmt"
)

// WinPatterns are the three rows, three columns and two diagonals of the board.
var WinPatterns = [8][3]Coord{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid of marks together with the number of occupied cells.
// The filled counter always equals the number of non-empty cells.
type Board struct {
	cells  [Rows][Cols]PlayerMark
	filled int
}

func NewBoard() *Board {
	return &Board{}
}

// Place puts mark on the cell identified by a 1-based cell number.
// The board is left untouched when an error is returned.
func (b *Board) Place(cellNumber int, mark PlayerMark) error {
	if mark != PlayerX && mark != PlayerO {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	row, col, ok := CellToCoords(cellNumber)
	if !ok {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cellNumber)
	}
	if b.cells[row][col] != None {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cellNumber)
	}

	b.cells[row][col] = mark
	b.filled++
	return nil
}

// SetPlayerPosition reports whether mark was placed on the cell.
func (b *Board) SetPlayerPosition(cellNumber int, mark PlayerMark) bool {
	return b.Place(cellNumber, mark) == nil
}

// Board returns a copy of the grid. Rows are fresh slices, so mutating the
// result never affects the board.
func (b *Board) Board() [][]PlayerMark {
	board := make([][]PlayerMark, Rows)
	for i := range [Rows]int{} {
		board[i] = make([]PlayerMark, Cols)
		copy(board[i], b.cells[i][:])
	}
	return board
}

// Cell returns the mark at (row, col), or None when out of range.
func (b *Board) Cell(row, col int) PlayerMark {
	if row < BorderMin || row > BorderMax || col < BorderMin || col > BorderMax {
		return None
	}
	return b.cells[row][col]
}

func (b *Board) RowCount() int       { return Rows }
func (b *Board) ColCount() int       { return Cols }
func (b *Board) TotalCellCount() int { return TotalCells }
func (b *Board) FilledCellCount() int {
	return b.filled
}

// IsFull checks if every cell is occupied.
func (b *Board) IsFull() bool {
	return b.filled == TotalCells
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = [Rows][Cols]PlayerMark{}
	b.filled = 0
}

// HasLine reports whether mark occupies all three cells of any win pattern.
func (b *Board) HasLine(mark PlayerMark) bool {
	if mark == None {
		return false
	}

	for _, pattern := range WinPatterns {
		if b.cells[pattern[0].Row][pattern[0].Col] == mark &&
			b.cells[pattern[1].Row][pattern[1].Col] == mark &&
			b.cells[pattern[2].Row][pattern[2].Col] == mark {
			return true
		}
	}
	return false
}

// Winner returns the mark that completed a line, or None.
func (b *Board) Winner() PlayerMark {
	for _, mark := range []PlayerMark{PlayerX, PlayerO} {
		if b.HasLine(mark) {
			return mark
		}
	}
	return None
}
