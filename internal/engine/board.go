package engine

const (
	Rows = 20
	Cols = 10
)

// Board is the grid of locked cells. It is a value type; copying a Board copies every cell.
type Board struct {
	cells [Rows][Cols]Color
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

func (b *Board) At(x, y int) Color {
	if !inBounds(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y) != Empty
}

// Set writes c at (x, y). Out-of-range coordinates and invalid colours are ignored.
func (b *Board) Set(x, y int, c Color) {
	if !inBounds(x, y) || !c.Valid() {
		return
	}
	b.cells[y][x] = c
}

func (b *Board) Row(y int) [Cols]Color {
	if y < 0 || y >= Rows {
		return [Cols]Color{}
	}
	return b.cells[y]
}

func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for x := 0; x < Cols; x++ {
		if b.cells[y][x] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) Reset() {
	b.cells = [Rows][Cols]Color{}
}

// ClearFullRows removes every full row, drops the rows above it and refills the top with
// empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if !b.RowFull(y) {
			y--
			continue
		}
		// row y now holds what was above it, so it is examined again
		copy(b.cells[1:y+1], b.cells[0:y])
		b.cells[0] = [Cols]Color{}
		cleared++
	}
	return cleared
}

// Collides reports whether p overlaps a wall, the floor or a locked cell of b.
// Cells above row 0 are only checked against the side walls.
func Collides(p Piece, b *Board) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Cols || c.Y >= Rows {
			return true
		}
		if c.Y >= 0 && b.cells[c.Y][c.X] != Empty {
			return true
		}
	}
	return false
}
