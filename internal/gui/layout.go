package gui

import (
	"math"

	"github.com/san-kum/standwave/internal/wave"
)

const (
	headerHeight = 50
	footerHeight = 30
	margin       = 30
	panelGap     = 28
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Point is a screen position in pixels.
type Point struct {
	X, Y float32
}

// Panels stacks the incident, reflected and combined panels between the
// header and the footer of a width×height window.
func Panels(width, height int) [3]Rect {
	w := float32(width - 2*margin)
	avail := float32(height-headerHeight-footerHeight) - 2*panelGap
	h := avail / 3
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	var rs [3]Rect
	for i := range rs {
		rs[i] = Rect{
			X: margin,
			Y: headerHeight + float32(i)*(h+panelGap),
			W: w,
			H: h,
		}
	}
	return rs
}

// Limits returns the vertical half-ranges of the three panels for reflection
// coefficient r.
func Limits(r float64) (inc, ref, comb float64) {
	r = math.Abs(r)
	return 2, math.Max(2, r), math.Max(3, 1+r)
}

// Project maps ys sampled on grid into rect, the grid spanning the width and
// ±limit the height. Values beyond limit are clamped to the edge.
func Project(grid wave.Grid, ys []float64, limit float64, rect Rect) []Point {
	n := min(len(grid), len(ys))
	if n == 0 || limit <= 0 {
		return nil
	}
	x0, x1 := grid[0], grid[len(grid)-1]
	span := x1 - x0
	if span <= 0 {
		span = 1
	}
	mid := rect.Y + rect.H/2
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		v := math.Max(-limit, math.Min(limit, ys[i]))
		pts[i] = Point{
			X: rect.X + float32((grid[i]-x0)/span)*rect.W,
			Y: mid - float32(v/limit)*rect.H/2,
		}
	}
	return pts
}
