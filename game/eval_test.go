package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateLines(t *testing.T) {
	t.Run("empty board is balanced", func(t *testing.T) {
		require.Equal(t, 0.0, EvaluateLines(NewGameState()))
	})

	t.Run("scores from the player to move", func(t *testing.T) {
		var board Board
		board[0][0], board[0][1], board[0][2] = MarkZero, MarkZero, MarkZero
		board[4][4] = MarkOne

		zero := EvaluateLines(NewGameStateFrom(board, PlayerZero))
		one := EvaluateLines(NewGameStateFrom(board, PlayerOne))

		require.Greater(t, zero, 0.0, "More open line control should score positive")
		require.InDelta(t, -zero, one, 1e-9, "Scores should be symmetric")
		require.LessOrEqual(t, zero, 1.0)
	})

	t.Run("blocked lines do not count", func(t *testing.T) {
		var board Board
		for c := 0; c < Size-1; c++ {
			board[1][c] = MarkZero
		}
		board[1][4] = MarkOne
		blocked := EvaluateLines(NewGameStateFrom(board, PlayerZero))

		board[1][4] = Empty
		open := EvaluateLines(NewGameStateFrom(board, PlayerZero))

		require.Greater(t, open, blocked, "An open row should be worth more than a blocked one")
	})

	t.Run("finished games score as win or loss", func(t *testing.T) {
		var board Board
		for c := 0; c < Size; c++ {
			board[3][c] = MarkOne
		}
		require.Equal(t, -1.0, EvaluateLines(NewGameStateFrom(board, PlayerZero)))
		require.Equal(t, -1.0, EvaluateMarks(NewGameStateFrom(board, PlayerZero)))
	})
}

func TestEvaluateMarks(t *testing.T) {
	var board Board
	board[0][0], board[0][1], board[4][4] = MarkZero, MarkZero, MarkOne

	got := EvaluateMarks(NewGameStateFrom(board, PlayerZero))

	require.InDelta(t, 1.0/3.0, got, 1e-9, "(2-1)/(2+1)")
}

func TestLookupEvaluation(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		for _, name := range EvaluationNames() {
			evaluate, err := LookupEvaluation(name)
			require.NoError(t, err)
			require.NotNil(t, evaluate)
		}
	})

	t.Run("empty name falls back to lines", func(t *testing.T) {
		evaluate, err := LookupEvaluation("")
		require.NoError(t, err)
		require.Equal(t, 0.0, evaluate(NewGameState()))
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := LookupEvaluation("troops")
		require.Error(t, err)
	})

	t.Run("foreign state types panic", func(t *testing.T) {
		require.Panics(t, func() { EvaluateLines(nil) })
	})
}
