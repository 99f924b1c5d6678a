package player

import (
	"quixo/game"
)

// Strategy chooses a move for p given the current board. The board is a copy;
// the session validates whatever comes back, so a strategy may return an
// illegal move and let the session's policy deal with it.
type Strategy interface {
	MakeMove(board game.Board, p game.Player) game.Move
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(board game.Board, p game.Player) game.Move

func (f StrategyFunc) MakeMove(board game.Board, p game.Player) game.Move {
	return f(board, p)
}
