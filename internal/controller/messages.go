package controller

import (
	"ctchen222/tictactoe/internal/apperror"
	"errors"
	"fmt"
)

const (
	firstNameQuestion  = "Player 1 (X), enter your name:"
	secondNameQuestion = "Player 2 (O), enter your name:"
	turnQuestion       = "%s's turn (%s). Choose a cell (1-9):"
	playAgainQuestion  = "Play again?"
	renameQuestion     = "Rename players?"

	winMessage  = "%s won!"
	tieMessage  = "tie!"
	exitMessage = "Thanks for playing!"
)

// inputKind labels a rejected answer for logs and metrics.
func inputKind(err error) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, apperror.ErrInvalidNumericInput):
		return "not_a_number"
	case errors.Is(err, apperror.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, apperror.ErrEmptyName):
		return "empty_name"
	default:
		return "unknown"
	}
}

// notice is the text shown to the operator for a rejected answer.
func notice(err error, cell int) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		return fmt.Sprintf("There is no cell %d. Pick a number from 1 to 9.", cell)
	case errors.Is(err, apperror.ErrCellOccupied):
		return fmt.Sprintf("Cell %d is already taken.", cell)
	case errors.Is(err, apperror.ErrInvalidNumericInput):
		return "Please enter a number from 1 to 9."
	case errors.Is(err, apperror.ErrDuplicateName):
		return "Player names must be different. Please try again."
	case errors.Is(err, apperror.ErrEmptyName):
		return "Player names must not be empty. Please try again."
	default:
		return "Invalid input. Please try again."
	}
}
