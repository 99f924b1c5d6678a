package searcher

import (
	"math"

	"quixo/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

// MaxCutoff lets rollouts run until the game ends.
const MaxCutoff = math.MaxInt

// Segment is one played move and the hash of the state it led to.
type Segment struct {
	Move      game.Move
	StateHash game.StateHash
}
