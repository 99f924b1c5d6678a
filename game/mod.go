package game

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Player
	// LegalMoves is empty once the game has a winner.
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() (Player, bool)
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
