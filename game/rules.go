package game

import (
	"fmt"
	"slices"
)

// LegalMoves returns every move p may make on b: each border cell that is empty
// or already holds p's mark, paired with each of its legal directions.
func LegalMoves(b Board, p Player) []Move {
	mark := p.Mark()
	moves := make([]Move, 0, 44)
	for _, cell := range borders {
		if m := b[cell.Row][cell.Col]; m != Empty && m != mark {
			continue
		}
		for _, d := range cell.LegalDirections() {
			moves = append(moves, Move{From: cell, Dir: d})
		}
	}
	return moves
}

// Validate checks move for p against b without touching the board.
func Validate(b Board, p Player, move Move) error {
	if !move.From.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, move)
	}
	if !move.From.IsBorder() {
		return fmt.Errorf("%w: %s", ErrNotBorderCell, move)
	}
	if owner, ok := b[move.From.Row][move.From.Col].Owner(); ok && owner != p {
		return fmt.Errorf("%w: %s", ErrWrongOwnership, move)
	}
	if !move.Dir.valid() || !slices.Contains(move.From.LegalDirections(), move.Dir) {
		return fmt.Errorf("%w: %s", ErrIllegalDirection, move)
	}
	return nil
}

// Apply returns the board after p plays move. The piece at move.From is
// taken out, the cells between it and the border in move.Dir shift one step
// back towards move.From, and p's mark lands on that border cell.
//
// Apply panics if move does not pass Validate.
func Apply(b Board, p Player, move Move) Board {
	if err := Validate(b, p, move); err != nil {
		panic(fmt.Sprintf("apply unvalidated move: %v", err))
	}

	cur := move.From
	for {
		next := cur.step(move.Dir)
		if !next.InBounds() {
			break
		}
		b[cur.Row][cur.Col] = b[next.Row][next.Col]
		cur = next
	}
	b[cur.Row][cur.Col] = p.Mark()
	return b
}

// Winner reports the winner of b right after mover played. The mover wins if
// any line is full of its mark. Otherwise the opponent wins if the slide
// completed one of its lines.
func Winner(b Board, mover Player) (Player, bool) {
	var complete [2]bool
	for _, line := range lines {
		first := b[line[0].Row][line[0].Col]
		owner, ok := first.Owner()
		if !ok {
			continue
		}
		full := true
		for _, c := range line[1:] {
			if b[c.Row][c.Col] != first {
				full = false
				break
			}
		}
		if full {
			complete[owner] = true
		}
	}

	switch {
	case complete[mover]:
		return mover, true
	case complete[mover.Opponent()]:
		return mover.Opponent(), true
	default:
		return 0, false
	}
}

// InferMove finds a move p could have played to turn before into after.
// Several moves can yield the same board; the first in LegalMoves order wins.
func InferMove(before, after Board, p Player) (Move, bool) {
	for _, move := range LegalMoves(before, p) {
		if Apply(before, p, move) == after {
			return move, true
		}
	}
	return Move{}, false
}
