package game

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type position struct {
	board  Board
	player Player
}

// randomPositions plays random legal games and collects every position reached
// before a winner appears.
func randomPositions(seed uint64, games, maxMoves int) []position {
	rng := rand.New(rand.NewSource(seed))
	positions := []position{}
	for g := 0; g < games; g++ {
		var board Board
		player := PlayerZero
		for m := 0; m < maxMoves; m++ {
			positions = append(positions, position{board, player})
			moves := LegalMoves(board, player)
			board = Apply(board, player, moves[rng.Intn(len(moves))])
			if _, ok := Winner(board, player); ok {
				break
			}
			player = player.Opponent()
		}
	}
	return positions
}

func allCandidateMoves() []Move {
	moves := []Move{}
	for r := -1; r <= Size; r++ {
		for c := -1; c <= Size; c++ {
			for d := Direction(-1); d <= Right+1; d++ {
				moves = append(moves, Move{From: Coord{Row: r, Col: c}, Dir: d})
			}
		}
	}
	return moves
}

func TestLegalMovesAgreeWithValidate(t *testing.T) {
	candidates := allCandidateMoves()
	for _, pos := range randomPositions(1, 20, 60) {
		legal := LegalMoves(pos.board, pos.player)
		require.NotEmpty(t, legal, "Reachable position should always offer a move:\n%s", pos.board)

		for _, move := range candidates {
			err := Validate(pos.board, pos.player, move)
			if slices.Contains(legal, move) {
				require.NoError(t, err, "Legal move %s should validate", move)
			} else {
				require.Error(t, err, "Move %s outside the legal set should fail", move)
			}
		}
	}
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board offers every border move", func(t *testing.T) {
		got := LegalMoves(Board{}, PlayerZero)
		require.Len(t, got, 4*2+12*3, "Corners give 2 moves and edges 3")
		for _, move := range got {
			require.True(t, move.From.IsBorder(), "Origin %s should be a border cell", move.From)
		}
	})

	t.Run("opponent cells are excluded", func(t *testing.T) {
		board, _ := Board{}.WithMark(Coord{0, 0}, MarkOne)
		board, _ = board.WithMark(Coord{0, 2}, MarkZero)

		got := LegalMoves(board, PlayerZero)

		require.Len(t, got, 44-2, "Opponent corner should be excluded")
		require.Contains(t, got, Move{From: Coord{0, 2}, Dir: Down}, "Own cell should stay playable")
		for _, move := range got {
			require.NotEqual(t, Coord{0, 0}, move.From, "Opponent cell should not be an origin")
		}
	})
}

func TestValidate(t *testing.T) {
	var board Board
	board, _ = board.WithMark(Coord{0, 1}, MarkOne)

	cases := []struct {
		name string
		move Move
		want error
	}{
		{"outside the board", Move{From: Coord{5, 0}, Dir: Up}, ErrOutOfRange},
		{"center cell", Move{From: Coord{2, 2}, Dir: Up}, ErrNotBorderCell},
		{"inner cell", Move{From: Coord{1, 3}, Dir: Left}, ErrNotBorderCell},
		{"opponent cell", Move{From: Coord{0, 1}, Dir: Down}, ErrWrongOwnership},
		{"pushing back onto own edge", Move{From: Coord{0, 2}, Dir: Up}, ErrIllegalDirection},
		{"unknown direction", Move{From: Coord{0, 2}, Dir: Direction(7)}, ErrIllegalDirection},
		{"corner towards its edge", Move{From: Coord{4, 4}, Dir: Right}, ErrIllegalDirection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(board, PlayerZero, tc.move)
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("illegal moves share a common error", func(t *testing.T) {
		for _, err := range []error{ErrNotBorderCell, ErrWrongOwnership, ErrIllegalDirection} {
			require.ErrorIs(t, err, ErrIllegalMove)
		}
	})

	t.Run("empty and owned cells are both valid origins", func(t *testing.T) {
		require.NoError(t, Validate(board, PlayerOne, Move{From: Coord{0, 1}, Dir: Down}))
		require.NoError(t, Validate(board, PlayerOne, Move{From: Coord{0, 3}, Dir: Down}))
	})

	t.Run("validation leaves the board untouched", func(t *testing.T) {
		before := board
		_ = Validate(board, PlayerZero, Move{From: Coord{0, 1}, Dir: Down})
		require.Empty(t, cmp.Diff(before, board))
	})
}

func TestApply(t *testing.T) {
	t.Run("corner pushed down on the empty board", func(t *testing.T) {
		got := Apply(Board{}, PlayerZero, Move{From: Coord{0, 0}, Dir: Down})

		var want Board
		want[4][0] = MarkZero
		require.Empty(t, cmp.Diff(want, got), "Mark should land at the bottom of column 0")
	})

	t.Run("corner pushed right shifts the row", func(t *testing.T) {
		var board Board
		board[0] = [Size]Mark{Empty, MarkOne, MarkZero, MarkOne, MarkZero}
		board[3][3] = MarkOne

		got := Apply(board, PlayerZero, Move{From: Coord{0, 0}, Dir: Right})

		want := board
		want[0] = [Size]Mark{MarkOne, MarkZero, MarkOne, MarkZero, MarkZero}
		require.Empty(t, cmp.Diff(want, got), "Row 0 should shift left and receive X on the right")
	})

	t.Run("edge cell pushed up shifts the column", func(t *testing.T) {
		var board Board
		for r := 0; r < Size; r++ {
			board[r][2] = MarkOne
		}
		board[0][2] = MarkZero

		got := Apply(board, PlayerOne, Move{From: Coord{4, 2}, Dir: Up})

		want := board
		want[4][2], want[3][2], want[2][2], want[1][2] = MarkOne, MarkOne, MarkOne, MarkZero
		want[0][2] = MarkOne
		require.Empty(t, cmp.Diff(want, got))
	})

	t.Run("inner pieces slide towards the origin", func(t *testing.T) {
		var board Board
		board[2] = [Size]Mark{MarkZero, MarkOne, MarkZero, MarkOne, Empty}

		got := Apply(board, PlayerOne, Move{From: Coord{2, 4}, Dir: Left})

		require.Equal(t, [Size]Mark{MarkOne, MarkZero, MarkOne, MarkZero, MarkOne}, got[2])
	})

	t.Run("receiver is not mutated", func(t *testing.T) {
		var board Board
		_ = Apply(board, PlayerZero, Move{From: Coord{0, 0}, Dir: Down})
		require.Equal(t, Board{}, board)
	})

	t.Run("unvalidated move panics", func(t *testing.T) {
		require.Panics(t, func() {
			Apply(Board{}, PlayerZero, Move{From: Coord{2, 2}, Dir: Up})
		}, "Apply should refuse a center origin")
	})
}

func TestApplyChangesOnlyOneLine(t *testing.T) {
	for _, pos := range randomPositions(2, 10, 50) {
		for _, move := range LegalMoves(pos.board, pos.player) {
			after := Apply(pos.board, pos.player, move)
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					inLine := r == move.From.Row
					if move.Dir == Up || move.Dir == Down {
						inLine = c == move.From.Col
					}
					if !inLine {
						require.Equal(t, pos.board[r][c], after[r][c],
							"Cell (%d,%d) outside the line of %s should not change", r, c, move)
					}
				}
			}
		}
	}
}

func TestWinner(t *testing.T) {
	t.Run("no line on the empty board", func(t *testing.T) {
		_, ok := Winner(Board{}, PlayerZero)
		require.False(t, ok)
	})

	t.Run("completing a row by sliding into it", func(t *testing.T) {
		var board Board
		for c := 0; c < Size-1; c++ {
			board[2][c] = MarkZero
		}

		move := Move{From: Coord{2, 4}, Dir: Left}
		require.NoError(t, Validate(board, PlayerZero, move))
		after := Apply(board, PlayerZero, move)

		got, ok := Winner(after, PlayerZero)
		require.True(t, ok, "Row 2 should be complete:\n%s", after)
		require.Equal(t, PlayerZero, got)
	})

	t.Run("diagonal line", func(t *testing.T) {
		var board Board
		for i := 0; i < Size; i++ {
			board[i][Size-1-i] = MarkOne
		}
		got, ok := Winner(board, PlayerZero)
		require.True(t, ok)
		require.Equal(t, PlayerOne, got, "Opponent's line should win when the mover has none")
	})

	t.Run("both players complete a line", func(t *testing.T) {
		var board Board
		for i := 0; i < Size; i++ {
			board[0][i] = MarkZero
			board[4][i] = MarkOne
		}
		got, ok := Winner(board, PlayerOne)
		require.True(t, ok)
		require.Equal(t, PlayerOne, got, "Mover should win a double completion")

		got, _ = Winner(board, PlayerZero)
		require.Equal(t, PlayerZero, got, "Mover should win a double completion")
	})

	t.Run("repeated checks agree", func(t *testing.T) {
		for _, pos := range randomPositions(3, 10, 80) {
			first, firstOK := Winner(pos.board, pos.player)
			second, secondOK := Winner(pos.board, pos.player)
			require.Equal(t, firstOK, secondOK)
			require.Equal(t, first, second)
		}
	})
}

func TestRandomGamesFuzz(t *testing.T) {
	games := 10000
	if testing.Short() {
		games = 500
	}
	rng := rand.New(rand.NewSource(42))

	for g := 0; g < games; g++ {
		var board Board
		player := PlayerZero
		for m := 0; m < 150; m++ {
			moves := LegalMoves(board, player)
			require.NotEmpty(t, moves)
			move := moves[rng.Intn(len(moves))]
			require.NoError(t, Validate(board, player, move))
			require.True(t, move.From.InBounds(), "Origin %s should be on the board", move.From)

			board = Apply(board, player, move)
			winner, ok := Winner(board, player)
			if !ok {
				player = player.Opponent()
				continue
			}

			complete := completedLines(board)
			require.True(t, complete[winner], "Winner %s should own a full line:\n%s", winner, board)
			if complete[player] {
				require.Equal(t, player, winner, "Mover should be the single winner of a double completion")
			}
			break
		}
	}
}

func completedLines(b Board) [2]bool {
	var complete [2]bool
	for _, line := range AllLines() {
		first := b[line[0].Row][line[0].Col]
		owner, ok := first.Owner()
		if !ok {
			continue
		}
		full := true
		for _, c := range line {
			full = full && b[c.Row][c.Col] == first
		}
		if full {
			complete[owner] = true
		}
	}
	return complete
}

func TestInferMove(t *testing.T) {
	var board Board
	board[0] = [Size]Mark{MarkOne, Empty, MarkZero, Empty, MarkOne}
	move := Move{From: Coord{0, 2}, Dir: Down}
	after := Apply(board, PlayerZero, move)

	got, ok := InferMove(board, after, PlayerZero)
	require.True(t, ok, "Move should be recovered")
	require.Equal(t, after, Apply(board, PlayerZero, got), "Recovered move should reproduce the board")

	_, ok = InferMove(board, board, PlayerOne)
	require.False(t, ok, "An unchanged board cannot follow a slide")
}
