package game

import (
	"fmt"
	"sort"
)

// Evaluations maps the names accepted in agent configurations to heuristics.
var Evaluations = map[string]Evaluate{
	"lines": EvaluateLines,
	"marks": EvaluateMarks,
}

// EvaluationNames lists the registered heuristics in sorted order.
func EvaluationNames() []string {
	names := make([]string, 0, len(Evaluations))
	for name := range Evaluations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEvaluation resolves a heuristic by name. An empty name yields EvaluateLines.
func LookupEvaluation(name string) (Evaluate, error) {
	if name == "" {
		return EvaluateLines, nil
	}
	evaluate, ok := Evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q, expected one of %v", name, EvaluationNames())
	}
	return evaluate, nil
}

// EvaluateLines scores line control from the current player's perspective.
// A line only counts for a player when the opponent holds none of its cells,
// and longer open lines weigh quadratically more.
func EvaluateLines(s State) float64 {
	gs := mustGameState(s)
	if score, ok := terminalScore(gs); ok {
		return score
	}

	current := gs.CurrentPlayer.Mark()
	opponent := gs.CurrentPlayer.Opponent().Mark()
	var mine, theirs float64
	for _, line := range lines {
		own, other := 0, 0
		for _, c := range line {
			switch gs.Board[c.Row][c.Col] {
			case current:
				own++
			case opponent:
				other++
			}
		}
		if other == 0 {
			mine += float64(own * own)
		}
		if own == 0 {
			theirs += float64(other * other)
		}
	}
	return normalize(mine, theirs)
}

// EvaluateMarks compares the number of cells each player holds.
func EvaluateMarks(s State) float64 {
	gs := mustGameState(s)
	if score, ok := terminalScore(gs); ok {
		return score
	}

	mine := gs.Board.Count(gs.CurrentPlayer.Mark())
	theirs := gs.Board.Count(gs.CurrentPlayer.Opponent().Mark())
	return normalize(float64(mine), float64(theirs))
}

func mustGameState(s State) *GameState {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	return gs
}

func terminalScore(gs *GameState) (float64, bool) {
	winner, ok := gs.Winner()
	if !ok {
		return 0, false
	}
	if winner == gs.CurrentPlayer {
		return 1, true
	}
	return -1, true
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

