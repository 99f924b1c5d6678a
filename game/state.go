package game

import (
	"encoding/binary"
	"hash/fnv"
)

// GameState is a Board together with the player to move, as seen by searchers.
type GameState struct {
	Board         Board
	CurrentPlayer Player
	LastMove      *Move // nil for a state not reached by Play
	winner        Player
	won           bool
}

func NewGameState() *GameState {
	return &GameState{CurrentPlayer: PlayerZero}
}

// NewGameStateFrom wraps board with p to move. A line already on the board is
// credited as if p's opponent had just completed it.
func NewGameStateFrom(board Board, p Player) *GameState {
	winner, won := Winner(board, p.Opponent())
	return &GameState{
		Board:         board,
		CurrentPlayer: p,
		winner:        winner,
		won:           won,
	}
}

func (gs *GameState) Player() Player {
	return gs.CurrentPlayer
}

func (gs *GameState) LegalMoves() []Move {
	if gs.won {
		return nil
	}
	return LegalMoves(gs.Board, gs.CurrentPlayer)
}

// Play panics on an illegal move, see Apply.
func (gs *GameState) Play(move Move) State {
	board := Apply(gs.Board, gs.CurrentPlayer, move)
	winner, won := Winner(board, gs.CurrentPlayer)
	return &GameState{
		Board:         board,
		CurrentPlayer: gs.CurrentPlayer.Opponent(),
		LastMove:      &move,
		winner:        winner,
		won:           won,
	}
}

func (gs *GameState) Winner() (Player, bool) {
	return gs.winner, gs.won
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	// Hash current player
	binary.Write(hasher, binary.LittleEndian, int8(gs.CurrentPlayer))

	// Hash cells in row-major order
	for _, row := range gs.Board {
		binary.Write(hasher, binary.LittleEndian, row)
	}

	return StateHash(hasher.Sum64())
}
