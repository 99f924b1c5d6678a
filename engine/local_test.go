package engine

import (
	"errors"
	"testing"

	"quixo/game"
	"quixo/player"
	"quixo/searcher"
	"quixo/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scripted plays the given moves in order and fails the test when it runs out.
func scripted(t *testing.T, moves ...game.Move) player.Strategy {
	t.Helper()
	calls := 0
	return player.StrategyFunc(func(game.Board, game.Player) game.Move {
		if calls >= len(moves) {
			t.Fatalf("strategy solicited %d times, only %d moves scripted", calls+1, len(moves))
		}
		calls++
		return moves[calls-1]
	})
}

func rowThreat() game.Board {
	var board game.Board
	for c := 0; c < game.Size-1; c++ {
		board[2][c] = game.MarkZero
	}
	return board
}

func TestSessionStart(t *testing.T) {
	t.Run("empty board with PlayerZero to move", func(t *testing.T) {
		s := NewSession(player.NewRandomStrategy(1), player.NewRandomStrategy(2))

		require.Equal(t, game.Board{}, s.Board())
		require.Equal(t, game.PlayerZero, s.ToMove())
		require.Equal(t, AwaitingMove, s.Status())
		_, done := s.Outcome()
		require.False(t, done)
	})

	t.Run("starting board with a complete line", func(t *testing.T) {
		var board game.Board
		for r := 0; r < game.Size; r++ {
			board[r][0] = game.MarkOne
		}
		s := NewSession(scripted(t), scripted(t), WithBoard(board))

		outcome, done := s.Outcome()
		require.True(t, done, "Session should be finished from the start")
		require.Equal(t, game.PlayerOne, outcome.Winner)
		require.ErrorIs(t, s.Step(), ErrGameOver)
	})

	t.Run("missing strategy", func(t *testing.T) {
		require.Panics(t, func() { NewSession(nil, player.NewRandomStrategy(1)) })
	})
}

func TestSessionWin(t *testing.T) {
	// Row 2 is one slide from complete and the opponent must never be asked
	s := NewSession(
		scripted(t, game.Move{From: game.Coord{Row: 2, Col: 4}, Dir: game.Left}),
		scripted(t),
		WithBoard(rowThreat()),
	)

	outcome, err := s.Run()

	require.NoError(t, err)
	require.Equal(t, Outcome{Winner: game.PlayerZero, Moves: 1}, outcome)
	require.Equal(t, Finished, s.Status())
	require.Equal(t, [game.Size]game.Mark{game.MarkZero, game.MarkZero, game.MarkZero, game.MarkZero, game.MarkZero}, s.Board()[2])
	require.ErrorIs(t, s.Step(), ErrGameOver, "Finished session should refuse further moves")

	gameMetric, moveMetrics := s.Metrics()
	require.True(t, gameMetric.Finished)
	require.Equal(t, 1, gameMetric.TotalMoves)
	require.Len(t, moveMetrics, 1)
}

func TestSessionForfeit(t *testing.T) {
	t.Run("center origin forfeits without touching the board", func(t *testing.T) {
		s := NewSession(
			scripted(t, game.Move{From: game.Coord{Row: 2, Col: 2}, Dir: game.Up}),
			scripted(t),
		)

		outcome, err := s.Run()

		require.NoError(t, err, "Forfeit is an outcome, not an error")
		require.Equal(t, game.PlayerOne, outcome.Winner, "Opponent should win by forfeit")
		require.True(t, outcome.Forfeit)
		require.Zero(t, outcome.Moves)
		require.ErrorIs(t, outcome.Violation, ErrProtocolViolation)
		require.ErrorIs(t, outcome.Violation, game.ErrNotBorderCell)
		require.Equal(t, game.Board{}, s.Board(), "Invalid move should never be applied")

		gameMetric, moveMetrics := s.Metrics()
		require.True(t, gameMetric.Forfeit)
		require.Empty(t, moveMetrics)
	})

	t.Run("taking an opponent cell", func(t *testing.T) {
		s := NewSession(
			scripted(t, game.Move{From: game.Coord{Row: 0, Col: 0}, Dir: game.Down}),
			scripted(t, game.Move{From: game.Coord{Row: 4, Col: 0}, Dir: game.Right}),
		)

		outcome, err := s.Run()

		require.NoError(t, err)
		require.Equal(t, game.PlayerZero, outcome.Winner)
		require.True(t, outcome.Forfeit)
		require.Equal(t, 1, outcome.Moves)
		require.ErrorIs(t, outcome.Violation, game.ErrWrongOwnership)
	})

	t.Run("retries allow a corrected move", func(t *testing.T) {
		s := NewSession(
			scripted(t,
				game.Move{From: game.Coord{Row: 0, Col: 0}, Dir: game.Up},
				game.Move{From: game.Coord{Row: 0, Col: 0}, Dir: game.Down},
			),
			scripted(t),
			WithRetries(1),
		)

		require.NoError(t, s.Step())

		require.Equal(t, AwaitingMove, s.Status(), "Corrected move should keep the game going")
		require.Equal(t, game.PlayerOne, s.ToMove())
		require.Equal(t, game.MarkZero, s.Board()[4][0])
		_, moveMetrics := s.Metrics()
		require.Equal(t, 2, moveMetrics[0].Attempts, "Rejected attempt should be counted")
	})

	t.Run("retries are bounded", func(t *testing.T) {
		bad := game.Move{From: game.Coord{Row: 1, Col: 1}, Dir: game.Left}
		s := NewSession(scripted(t, bad, bad, bad), scripted(t), WithRetries(2))

		outcome, err := s.Run()

		require.NoError(t, err)
		require.True(t, outcome.Forfeit, "Strategy should forfeit after 3 invalid moves")
		require.Equal(t, game.PlayerOne, outcome.Winner)
	})
}

func TestSessionTurns(t *testing.T) {
	expected := game.PlayerZero
	check := func(inner player.Strategy) player.Strategy {
		return player.StrategyFunc(func(board game.Board, p game.Player) game.Move {
			require.Equal(t, expected, p, "Players should alternate")
			expected = expected.Opponent()
			return inner.MakeMove(board, p)
		})
	}
	s := NewSession(check(player.NewRandomStrategy(1)), check(player.NewRandomStrategy(2)), WithMoveCap(40))

	for i := 0; i < 10 && s.Status() == AwaitingMove; i++ {
		require.NoError(t, s.Step())
	}
}

func TestSessionMoveCap(t *testing.T) {
	s := NewSession(player.NewRandomStrategy(1), player.NewRandomStrategy(2), WithMoveCap(3))

	_, err := s.Run()

	require.ErrorIs(t, err, ErrMoveCapReached)
	require.Equal(t, AwaitingMove, s.Status(), "Capped game has no outcome")
	gameMetric, moveMetrics := s.Metrics()
	require.False(t, gameMetric.Finished)
	require.Equal(t, 3, gameMetric.TotalMoves)
	require.Len(t, moveMetrics, 3)
}

func TestPlayRandomGames(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		outcome, err := Play(player.NewRandomStrategy(seed), player.NewRandomStrategy(seed+1000))

		require.NoError(t, err)
		require.False(t, outcome.Forfeit, "Random legal strategies never forfeit")
		require.Positive(t, outcome.Moves)
	}
}

func TestPlayNaiveStrategyWithRetries(t *testing.T) {
	// The naive strategy often picks illegal moves and needs re-soliciting
	outcome, err := Play(
		player.NewNaiveRandomStrategy(1),
		player.NewRandomStrategy(2),
		WithRetries(1000),
	)

	require.NoError(t, err)
	require.False(t, outcome.Forfeit)
}

func TestMCTSAdapter(t *testing.T) {
	mcts := searcher.NewMCTS(1, searcher.WithEpisodes(2000), searcher.WithCutoff(5), searcher.WithMetrics())
	adapter := &MCTSAdapter{InternalAgent: agent.NewEvaluationAgent(mcts)}
	s := NewSession(adapter, player.NewRandomStrategy(4), WithMoveCap(4))

	_, err := s.Run()

	require.True(t, errors.Is(err, ErrMoveCapReached), "Nobody can win within 4 moves")
	_, moveMetrics := s.Metrics()
	require.Len(t, moveMetrics, 4)

	first, second := moveMetrics[0], moveMetrics[2]
	require.Equal(t, game.PlayerZero, first.Player)
	require.Equal(t, 2000, first.Episodes, "Search metrics should be reported")
	require.True(t, first.IsTreeReset, "First search starts a fresh tree")
	require.False(t, second.IsTreeReset, "Second search should reuse the subtree of the reached position")
	require.Zero(t, moveMetrics[1].Episodes, "Random strategy does not search")
}
