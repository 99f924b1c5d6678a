package game

import (
	"fmt"
	"slices"
)

// Direction is the side of the board on which the taken piece is pushed back
// in. The rest of its row or column slides one step away from that side.
type Direction int8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

func (d Direction) valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Move takes the border piece at From and pushes it back in along Dir.
type Move struct {
	From Coord
	Dir  Direction
}

func (m Move) String() string {
	return fmt.Sprintf("%s→%s", m.From, m.Dir)
}

// Index orders moves by cell then direction. Used for deterministic tie-breaks.
func (m Move) Index() int {
	return (m.From.Row*Size+m.From.Col)*len(Directions) + int(m.Dir)
}

// SortMoves sorts moves in place by Index.
func SortMoves(moves []Move) {
	slices.SortFunc(moves, func(a, b Move) int { return a.Index() - b.Index() })
}
