package apperror

import "errors"

var (
	ErrOutOfRange          = errors.New("cell number is out of range")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrInvalidMark         = errors.New("invalid player mark")
	ErrInvalidNumericInput = errors.New("input is not a number")
	ErrDuplicateName       = errors.New("player names must be different")
	ErrEmptyName           = errors.New("player name must not be empty")
	ErrTooManyAttempts     = errors.New("too many invalid attempts")
	ErrInputClosed         = errors.New("input closed")
	ErrNoPlayers           = errors.New("players are not set up")
)
