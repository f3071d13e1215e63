package engine

import "errors"

var (
	ErrNoValidPlacement = errors.New("no valid placement")
	ErrGameOver         = errors.New("game over")
	ErrRepeatedShot     = errors.New("cell fired twice")
)
