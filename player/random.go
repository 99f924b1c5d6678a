package player

import (
	"quixo/game"

	"golang.org/x/exp/rand"
)

// RandomStrategy picks uniformly among the legal moves.
// It is not safe for concurrent use; give each session its own instance.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(seed uint64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomStrategy) MakeMove(board game.Board, p game.Player) game.Move {
	moves := game.LegalMoves(board, p)
	return moves[s.rng.Intn(len(moves))]
}

// NaiveRandomStrategy picks any cell and any direction, legal or not. It only
// finishes games under a session that re-solicits after a violation.
type NaiveRandomStrategy struct {
	rng *rand.Rand
}

func NewNaiveRandomStrategy(seed uint64) *NaiveRandomStrategy {
	return &NaiveRandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (s *NaiveRandomStrategy) MakeMove(game.Board, game.Player) game.Move {
	return game.Move{
		From: game.Coord{Row: s.rng.Intn(game.Size), Col: s.rng.Intn(game.Size)},
		Dir:  game.Directions[s.rng.Intn(len(game.Directions))],
	}
}
