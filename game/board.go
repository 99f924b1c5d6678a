package game

import (
	"fmt"
	"slices"
	"strings"
)

// Size is the side length of the Quixo board.
const Size = 5

const last = Size - 1

type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// IsBorder reports whether c lies on the outer ring of the board.
func (c Coord) IsBorder() bool {
	if !c.InBounds() {
		return false
	}
	return c.Row == 0 || c.Row == last || c.Col == 0 || c.Col == last
}

func (c Coord) IsCorner() bool {
	if !c.InBounds() {
		return false
	}
	return (c.Row == 0 || c.Row == last) && (c.Col == 0 || c.Col == last)
}

// LegalDirections returns the directions a piece taken from c may be pushed
// back in. A cell cannot be reinserted on the edge it was taken from, so
// corners get 2 directions, other border cells 3 and inner cells none.
func (c Coord) LegalDirections() []Direction {
	if !c.IsBorder() {
		return nil
	}
	directions := make([]Direction, 0, 3)
	for _, d := range Directions {
		if d == Up && c.Row == 0 || d == Down && c.Row == last ||
			d == Left && c.Col == 0 || d == Right && c.Col == last {
			continue
		}
		directions = append(directions, d)
	}
	return directions
}

func (c Coord) step(d Direction) Coord {
	dr, dc := d.delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Board is a 5x5 grid of marks. It is a value type: copies never share cells.
// The zero value is the empty starting board.
type Board [Size][Size]Mark

func (b Board) MarkAt(c Coord) (Mark, error) {
	if !c.InBounds() {
		return Empty, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	return b[c.Row][c.Col], nil
}

// WithMark returns a copy of b with the cell at c set to m.
func (b Board) WithMark(c Coord, m Mark) (Board, error) {
	if !c.InBounds() {
		return b, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	b[c.Row][c.Col] = m
	return b, nil
}

// Count returns the number of cells holding m.
func (b Board) Count(m Mark) int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == m {
				count++
			}
		}
	}
	return count
}

func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

// Line is a winning line of cells.
type Line [Size]Coord

var (
	lines   = buildLines()
	borders = buildBorders()
)

// AllLines returns the 5 rows, 5 columns and 2 diagonals.
func AllLines() []Line {
	return slices.Clone(lines)
}

// BorderCells returns the 16 cells of the outer ring in row-major order.
func BorderCells() []Coord {
	return slices.Clone(borders)
}

func buildLines() []Line {
	all := make([]Line, 0, 2*Size+2)
	for i := 0; i < Size; i++ {
		var row, col Line
		for j := 0; j < Size; j++ {
			row[j] = Coord{Row: i, Col: j}
			col[j] = Coord{Row: j, Col: i}
		}
		all = append(all, row, col)
	}
	var diagonal, antiDiagonal Line
	for i := 0; i < Size; i++ {
		diagonal[i] = Coord{Row: i, Col: i}
		antiDiagonal[i] = Coord{Row: i, Col: last - i}
	}
	return append(all, diagonal, antiDiagonal)
}

func buildBorders() []Coord {
	cells := make([]Coord, 0, 4*last)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if cell := (Coord{Row: r, Col: c}); cell.IsBorder() {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}
