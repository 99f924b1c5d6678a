package agent

import (
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/searcher"
)

type Agent interface {
	// FindMove searches from state and returns the chosen move and performance
	// metrics (if collected). lineage lists the moves played since the
	// agent's previous call, for tree reuse.
	FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric)
}

// sortedPolicy returns the moves of policy in a stable order.
func sortedPolicy(policy map[game.Move]float64) []game.Move {
	if len(policy) == 0 {
		panic("no moves to choose from")
	}
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	game.SortMoves(moves)
	return moves
}
