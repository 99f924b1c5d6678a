package engine

import (
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/searcher"
	"quixo/searcher/agent"
)

// MCTSAdapter plays an agent as a player.Strategy. Strategies only see the
// board, so the adapter remembers the position it left behind and infers the
// opponent's reply from it to let the agent reuse its search tree.
type MCTSAdapter struct {
	InternalAgent agent.Agent

	lastMove   game.Move
	lastBoard  game.Board // Board right after lastMove
	hasPlayed  bool
	lastSearch metrics.SearchMetric
}

func (ma *MCTSAdapter) MakeMove(board game.Board, p game.Player) game.Move {
	state := game.NewGameStateFrom(board, p)
	move, metric := ma.InternalAgent.FindMove(state, ma.lineage(state))
	ma.lastSearch = metric

	// An invalid move is left for the session to reject
	ma.hasPlayed = game.Validate(board, p, move) == nil
	if ma.hasPlayed {
		ma.lastMove = move
		ma.lastBoard = game.Apply(board, p, move)
	}
	return move
}

func (ma *MCTSAdapter) LastSearch() metrics.SearchMetric {
	return ma.lastSearch
}

// lineage rebuilds the two plies since the previous call, or nil when they
// cannot be recovered.
func (ma *MCTSAdapter) lineage(state *game.GameState) []searcher.Segment {
	if !ma.hasPlayed {
		return nil
	}
	opponent := state.CurrentPlayer.Opponent()
	reply, ok := game.InferMove(ma.lastBoard, state.Board, opponent)
	if !ok {
		return nil
	}
	return []searcher.Segment{
		{Move: ma.lastMove, StateHash: game.NewGameStateFrom(ma.lastBoard, opponent).Hash()},
		{Move: reply, StateHash: state.Hash()},
	}
}
