package game

import "fmt"

// Mark is the content of a board cell.
type Mark int8

const (
	Empty Mark = iota
	MarkZero
	MarkOne
)

func (m Mark) String() string {
	switch m {
	case Empty:
		return "·"
	case MarkZero:
		return "X"
	case MarkOne:
		return "O"
	default:
		return fmt.Sprintf("Mark(%d)", int8(m))
	}
}

// Owner returns the player stamping this mark, if any.
func (m Mark) Owner() (Player, bool) {
	switch m {
	case MarkZero:
		return PlayerZero, true
	case MarkOne:
		return PlayerOne, true
	default:
		return 0, false
	}
}

// Player identifies one of the two sides. PlayerZero always moves first.
type Player int

const (
	PlayerZero Player = iota
	PlayerOne
)

func (p Player) Mark() Mark {
	if p == PlayerZero {
		return MarkZero
	}
	return MarkOne
}

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	return fmt.Sprintf("player%d", int(p))
}
