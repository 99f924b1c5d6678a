package game

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("coordinate out of range")

// ErrIllegalMove is wrapped by every validation failure.
var ErrIllegalMove = errors.New("illegal move")

var (
	ErrNotBorderCell    = fmt.Errorf("%w: origin is not a border cell", ErrIllegalMove)
	ErrWrongOwnership   = fmt.Errorf("%w: origin is held by the opponent", ErrIllegalMove)
	ErrIllegalDirection = fmt.Errorf("%w: direction not allowed from origin", ErrIllegalMove)
)
