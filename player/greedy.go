package player

import (
	"quixo/game"

	"golang.org/x/exp/rand"
)

// GreedyStrategy looks one reply ahead: it takes a winning move when there is
// one, never hands the opponent a win it can see, and otherwise maximises
// evaluate on the resulting position. Ties are broken at random.
type GreedyStrategy struct {
	rng      *rand.Rand
	evaluate game.Evaluate
}

func NewGreedyStrategy(seed uint64, evaluate game.Evaluate) *GreedyStrategy {
	if evaluate == nil {
		evaluate = game.EvaluateLines
	}
	return &GreedyStrategy{
		rng:      rand.New(rand.NewSource(seed)),
		evaluate: evaluate,
	}
}

func (s *GreedyStrategy) MakeMove(board game.Board, p game.Player) game.Move {
	moves := game.LegalMoves(board, p)
	opponent := p.Opponent()

	safe := make([]game.Move, 0, len(moves))
	scores := make([]float64, 0, len(moves))
	for _, move := range moves {
		after := game.Apply(board, p, move)
		if winner, ok := game.Winner(after, p); ok {
			if winner == p {
				return move
			}
			continue
		}
		if canWin(after, opponent) {
			continue
		}
		safe = append(safe, move)
		// Evaluations are from the side to move, which is now the opponent
		scores = append(scores, -s.evaluate(game.NewGameStateFrom(after, opponent)))
	}

	if len(safe) == 0 {
		return moves[s.rng.Intn(len(moves))]
	}
	return s.pickBest(safe, scores)
}

func (s *GreedyStrategy) pickBest(moves []game.Move, scores []float64) game.Move {
	best := []game.Move{}
	bestScore := scores[0]
	for i, move := range moves {
		switch {
		case scores[i] > bestScore:
			bestScore = scores[i]
			best = append(best[:0], move)
		case scores[i] == bestScore:
			best = append(best, move)
		}
	}
	return best[s.rng.Intn(len(best))]
}

func canWin(board game.Board, p game.Player) bool {
	for _, move := range game.LegalMoves(board, p) {
		if winner, ok := game.Winner(game.Apply(board, p, move), p); ok && winner == p {
			return true
		}
	}
	return false
}
