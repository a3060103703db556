package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
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

const blank = rune(0x2800)

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
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// Width*2 by Height*4 sub-pixels; points outside are ignored.
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

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
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

// Plot draws ys as a connected curve spanning the full canvas width, with
// [-limit, limit] mapped onto the canvas height. Values past the limit are
// clamped to the edge.
func (c *Canvas) Plot(ys []float64, limit float64) {
	if len(ys) < 2 || limit <= 0 {
		return
	}
	pw, ph := c.Width*2, c.Height*4

	prevX, prevY := 0, 0
	for i, v := range ys {
		px := i * (pw - 1) / (len(ys) - 1)
		py := int(math.Round((1 - v/limit) / 2 * float64(ph-1)))
		if py < 0 {
			py = 0
		}
		if py >= ph {
			py = ph - 1
		}
		if i > 0 {
			c.DrawLine(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// RenderLayers draws over on top of under, each cell taking the style of the
// topmost layer with any dots in it. Both canvases must have the same size.
func RenderLayers(under, over *Canvas, underStyle, overStyle lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < over.Height; row++ {
		var run []rune
		runLayer := -1
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch runLayer {
			case 1:
				b.WriteString(overStyle.Render(string(run)))
			case 0:
				b.WriteString(underStyle.Render(string(run)))
			default:
				b.WriteString(string(run))
			}
			run = run[:0]
		}

		for col := 0; col < over.Width; col++ {
			r, layer := blank, -1
			if top := over.Grid[row][col]; top != blank {
				r, layer = top, 1
			} else if bottom := under.Grid[row][col]; bottom != blank {
				r, layer = bottom, 0
			}
			if layer != runLayer {
				flush()
				runLayer = layer
			}
			run = append(run, r)
		}
		flush()
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
