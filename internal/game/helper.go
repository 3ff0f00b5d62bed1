package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

// Board dimensions
const (
	Rows       = 3
	Cols       = 3
	TotalCells = Rows * Cols

	BorderMin = 0 // First index of the board
	BorderMax = 2 // Last index of the board
)

// Coord is a 0-based (row, col) position on the board.
type Coord struct {
	Row int
	Col int
}

// CellToCoords maps a 1-based, row-major cell number to its coordinates.
func CellToCoords(cellNumber int) (row, col int, ok bool) {
	if cellNumber < 1 || cellNumber > TotalCells {
		return -1, -1, false
	}
	return (cellNumber - 1) / Cols, (cellNumber - 1) % Cols, true
}
