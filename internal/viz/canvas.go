package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel at (x, y). The canvas spans
// (Width*2) x (Height*4) sub-pixels; anything outside is dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawGrid draws every live link of g through proj.
func (c *Canvas) DrawGrid(g *cloth.Grid, proj Projection) {
	g.Segments(func(a, b mgl64.Vec2) {
		x0, y0 := proj.ToPixel(a)
		x1, y1 := proj.ToPixel(b)
		c.DrawLine(x0, y0, x1, y1)
	})
}

// DrawCross marks v with a small plus sign.
func (c *Canvas) DrawCross(v mgl64.Vec2, proj Projection) {
	x, y := proj.ToPixel(v)
	c.DrawLine(x-2, y, x+2, y)
	c.DrawLine(x, y-2, x, y+2)
}

// Lit counts the sub-pixels that are on.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - blank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Projection maps simulation space onto canvas sub-pixels with a uniform
// scale, keeping the canvas origin at the top left of the space.
type Projection struct {
	Scale float64
}

// Fit picks the largest scale at which space fits on a cols x rows canvas.
func Fit(space cloth.Canvas, cols, rows int) Projection {
	if space.Width <= 0 || space.Height <= 0 {
		return Projection{Scale: 1}
	}
	sx := float64(cols*2) / space.Width
	sy := float64(rows*4) / space.Height
	return Projection{Scale: math.Min(sx, sy)}
}

func (p Projection) ToPixel(v mgl64.Vec2) (int, int) {
	return int(math.Floor(v[0] * p.Scale)), int(math.Floor(v[1] * p.Scale))
}

// FromCell returns the simulation point under the centre of a terminal
// cell.
func (p Projection) FromCell(col, row int) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(col*2) + 1) / p.Scale,
		(float64(row*4) + 2) / p.Scale,
	}
}
