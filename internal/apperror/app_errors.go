package apperror

import "errors"

var (
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrCellOutOfBounds    = errors.New("cell index is out of bounds")
	ErrNonTrainablePlayer = errors.New("player kind is not trainable")
	ErrUnknownPlayerKind  = errors.New("unknown player kind")
	ErrUnknownCommand     = errors.New("unknown command")
)
