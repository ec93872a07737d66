package engine

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
)

const shapeCount = 7

var shapeNames = [shapeCount]string{"I", "O", "T", "L", "J", "S", "Z"}

func (s Shape) String() string {
	if s < 0 || int(s) >= shapeCount {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Shapes lists every variant in draw order.
func Shapes() []Shape {
	return []Shape{ShapeI, ShapeO, ShapeT, ShapeL, ShapeJ, ShapeS, ShapeZ}
}

var shapeMatrices = [shapeCount][][]int{
	// I
	{{1, 1, 1, 1}},
	// O
	{{1, 1}, {1, 1}},
	// T
	{{1, 1, 1}, {0, 1, 0}},
	// L
	{{1, 1, 1}, {1, 0, 0}},
	// J
	{{1, 1, 1}, {0, 0, 1}},
	// S
	{{1, 1, 0}, {0, 1, 1}},
	// Z
	{{0, 1, 1}, {1, 1, 0}},
}

// Color is a board cell value. Empty marks a free cell; 1..PaletteSize index the palette.
type Color uint8

const Empty Color = 0

var palette = []color.RGBA{
	{R: 0x00, G: 0xf0, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0xf0, B: 0x00, A: 0xff},
	{R: 0xa0, G: 0x00, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0xa0, B: 0x00, A: 0xff},
	{R: 0x00, G: 0x00, B: 0xf0, A: 0xff},
	{R: 0x00, G: 0xf0, B: 0x00, A: 0xff},
	{R: 0xf0, G: 0x00, B: 0x00, A: 0xff},
}

// PaletteSize is the number of drawable piece colours.
var PaletteSize = len(palette)

func (c Color) Valid() bool {
	return int(c) <= len(palette)
}

func (c Color) RGBA() color.RGBA {
	if c == Empty || !c.Valid() {
		return color.RGBA{}
	}
	return palette[c-1]
}

func (c Color) Hex() string {
	if c == Empty || !c.Valid() {
		return ""
	}
	rgba := palette[c-1]
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Matrix is a piece's occupancy grid, indexed [row][col].
type Matrix [][]bool

func newMatrix(rows [][]int) Matrix {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		m[i] = make([]bool, len(row))
		for j, v := range row {
			m[i][j] = v != 0
		}
	}
	return m
}

func (m Matrix) Height() int {
	return len(m)
}

func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Rotate returns the matrix turned 90 degrees clockwise: an n×m matrix becomes m×n
// with out[i][j] = m[n-1-j][i].
func (m Matrix) Rotate() Matrix {
	n := m.Height()
	w := m.Width()
	out := make(Matrix, w)
	for i := range w {
		out[i] = make([]bool, n)
		for j := range n {
			out[i][j] = m[n-1-j][i]
		}
	}
	return out
}

type Point struct {
	X int
	Y int
}

type Piece struct {
	Shape  Shape
	Color  Color
	Matrix Matrix
	X      int
	Y      int
}

// NewPiece builds a piece at its spawn position: horizontally centred on row 0.
func NewPiece(shape Shape, c Color) Piece {
	m := newMatrix(shapeMatrices[shape])
	w := m.Width()
	return Piece{
		Shape:  shape,
		Color:  c,
		Matrix: m,
		X:      Cols/2 - (w+1)/2,
		Y:      0,
	}
}

func (p Piece) Clone() Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}

// Cells returns the board coordinates of every occupied cell.
func (p Piece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for i, row := range p.Matrix {
		for j, v := range row {
			if v {
				cells = append(cells, Point{X: p.X + j, Y: p.Y + i})
			}
		}
	}
	return cells
}

type Generator interface {
	Next() Piece
}

// RandomGenerator draws shape and colour as two independent uniform draws.
type RandomGenerator struct {
	rng *rand.Rand
}

func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomGenerator{rng: rng}
}

func (g *RandomGenerator) Next() Piece {
	shape := Shape(g.rng.IntN(shapeCount))
	c := Color(g.rng.IntN(len(palette)) + 1)
	return NewPiece(shape, c)
}
