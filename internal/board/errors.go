package board

import "errors"

var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrAlreadyAttacked   = errors.New("cell already attacked")
	ErrUnknownTarget     = errors.New("unknown target")
	ErrAlreadyEliminated = errors.New("target already eliminated")
	ErrInvalidFleet      = errors.New("invalid fleet")
)
