package apperror

import "errors"

var (
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell")
	ErrNoMove         = errors.New("no move available")
	ErrMalformedInput = errors.New("malformed input")
)
