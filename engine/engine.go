package engine

import (
	"errors"

	"quixo/experiments/metrics"
	"quixo/game"
)

var (
	ErrGameOver          = errors.New("game is over - no moves allowed")
	ErrProtocolViolation = errors.New("protocol violation")
	ErrMoveCapReached    = errors.New("move cap reached")
)

type Engine interface {
	// Run plays the game till there's a winner or the move cap is reached
	Run() (Outcome, error)
	Metrics() (metrics.GameMetric, []metrics.MoveMetric)
}

type Status int

const (
	AwaitingMove Status = iota
	Finished
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "awaiting move"
}

// Outcome is the terminal result of a session. There is no draw.
type Outcome struct {
	Winner game.Player
	// Forfeit is set when the loser returned a move that failed validation
	// after all retries; Violation then holds the last validation error,
	// wrapped in ErrProtocolViolation.
	Forfeit   bool
	Violation error
	Moves     int // Moves applied to the board
}

type Option func(s *Session)

// WithRetries lets a strategy be re-solicited n times after an invalid move
// before it forfeits. The default of 0 forfeits on the first violation.
func WithRetries(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.retries = n
		}
	}
}

// WithMoveCap stops Run with ErrMoveCapReached after n applied moves.
// Sessions are uncapped by default.
func WithMoveCap(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.moveCap = n
		}
	}
}

// WithBoard starts the session from board instead of the empty board, with
// PlayerZero still to move.
func WithBoard(board game.Board) Option {
	return func(s *Session) {
		s.board = board
	}
}
