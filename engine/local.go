package engine

import (
	"fmt"
	"time"

	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/player"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Session)(nil)

// Session drives one game between two strategies. It owns the board and turn
// state; strategies only ever see copies of the board.
type Session struct {
	strategies [2]player.Strategy
	board      game.Board
	toMove     game.Player
	status     Status
	outcome    Outcome
	retries    int
	moveCap    int

	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// NewSession creates a session with PlayerZero to move. A starting board that
// already holds a complete line finishes the session immediately.
func NewSession(zero, one player.Strategy, options ...Option) *Session {
	if zero == nil || one == nil {
		panic("both strategies are required")
	}
	s := &Session{
		strategies: [2]player.Strategy{zero, one},
		toMove:     game.PlayerZero,
		status:     AwaitingMove,
	}
	for _, option := range options {
		option(s)
	}

	s.gameMetric = metrics.GameMetric{
		StartingPlayer: game.PlayerZero,
		StartTime:      time.Now(),
	}
	if winner, ok := game.Winner(s.board, game.PlayerOne); ok {
		s.finish(Outcome{Winner: winner})
	}
	return s
}

// Play runs a fresh session between zero and one to completion.
func Play(zero, one player.Strategy, options ...Option) (Outcome, error) {
	return NewSession(zero, one, options...).Run()
}

func (s *Session) Board() game.Board {
	return s.board
}

func (s *Session) ToMove() game.Player {
	return s.toMove
}

func (s *Session) Status() Status {
	return s.status
}

// Outcome returns the terminal outcome once the session is finished.
func (s *Session) Outcome() (Outcome, bool) {
	return s.outcome, s.status == Finished
}

func (s *Session) Metrics() (metrics.GameMetric, []metrics.MoveMetric) {
	return s.gameMetric, s.moveMetrics
}

// Run steps the session until it finishes.
func (s *Session) Run() (Outcome, error) {
	log.Debug().Msgf("starting game, %s to move", s.toMove)

	for s.status == AwaitingMove {
		if err := s.Step(); err != nil {
			return s.outcome, err
		}
	}

	if s.outcome.Forfeit {
		log.Info().Msgf("game over after %d moves: %s wins by forfeit", s.outcome.Moves, s.outcome.Winner)
	} else {
		log.Debug().Msgf("game over after %d moves: %s wins", s.outcome.Moves, s.outcome.Winner)
	}
	return s.outcome, nil
}

// Step plays one half-turn: solicit, validate, apply, check for a winner.
// A strategy that keeps returning invalid moves forfeits; the board is then
// left as it was.
func (s *Session) Step() error {
	if s.status == Finished {
		return ErrGameOver
	}
	if s.moveCap > 0 && s.outcome.Moves >= s.moveCap {
		s.gameMetric.EndTime = time.Now()
		s.gameMetric.Duration = s.gameMetric.EndTime.Sub(s.gameMetric.StartTime)
		s.gameMetric.TotalMoves = s.outcome.Moves
		return fmt.Errorf("%w: %d moves without a winner", ErrMoveCapReached, s.moveCap)
	}

	p := s.toMove
	strategy := s.strategies[p]

	var move game.Move
	var err error
	attempts := 0
	start := time.Now()
	for attempts <= s.retries {
		attempts++
		move = strategy.MakeMove(s.board, p)
		if err = game.Validate(s.board, p, move); err == nil {
			break
		}
		log.Warn().Err(err).Msgf("%s returned an invalid move (attempt %d of %d)", p, attempts, s.retries+1)
	}
	think := time.Since(start)

	if err != nil {
		s.finish(Outcome{
			Winner:    p.Opponent(),
			Forfeit:   true,
			Violation: fmt.Errorf("%w: %s: %w", ErrProtocolViolation, p, err),
			Moves:     s.outcome.Moves,
		})
		return nil
	}

	s.board = game.Apply(s.board, p, move)
	s.outcome.Moves++
	s.recordMove(p, move, think, attempts)
	log.Debug().Msgf("move %d: %s plays %s\n%s", s.outcome.Moves, p, move, s.board)

	if winner, ok := game.Winner(s.board, p); ok {
		s.finish(Outcome{Winner: winner, Moves: s.outcome.Moves})
		return nil
	}
	s.toMove = p.Opponent()
	return nil
}

func (s *Session) recordMove(p game.Player, move game.Move, think time.Duration, attempts int) {
	metric := metrics.MoveMetric{
		Step:     s.outcome.Moves,
		Player:   p,
		Move:     move,
		Think:    think,
		Attempts: attempts,
	}
	if reporter, ok := s.strategies[p].(metrics.Reporter); ok {
		metric.SearchMetric = reporter.LastSearch()
	}
	s.moveMetrics = append(s.moveMetrics, metric)
}

func (s *Session) finish(outcome Outcome) {
	s.status = Finished
	s.outcome = outcome

	s.gameMetric.Winner = outcome.Winner
	s.gameMetric.Finished = true
	s.gameMetric.Forfeit = outcome.Forfeit
	s.gameMetric.EndTime = time.Now()
	s.gameMetric.Duration = s.gameMetric.EndTime.Sub(s.gameMetric.StartTime)
	s.gameMetric.TotalMoves = outcome.Moves
}
