package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/standwave/internal/wave"
)

// Options controls FrameToSVG layout and colors. Zero values fall back to
// DefaultOptions.
type Options struct {
	Width          int
	PanelHeight    int
	Background     string
	IncidentColor  string
	ReflectedColor string
	CombinedColor  string
	TraceColor     string
	TextColor      string
	Label          string
}

func DefaultOptions() Options {
	return Options{
		Width:          800,
		PanelHeight:    200,
		Background:     "#0a0a0a",
		IncidentColor:  "#4fc3f7",
		ReflectedColor: "#ffb74d",
		CombinedColor:  "#ff1744",
		TraceColor:     "#00e676",
		TextColor:      "#e0e0e0",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.PanelHeight <= 0 {
		o.PanelHeight = d.PanelHeight
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.IncidentColor == "" {
		o.IncidentColor = d.IncidentColor
	}
	if o.ReflectedColor == "" {
		o.ReflectedColor = d.ReflectedColor
	}
	if o.CombinedColor == "" {
		o.CombinedColor = d.CombinedColor
	}
	if o.TraceColor == "" {
		o.TraceColor = d.TraceColor
	}
	if o.TextColor == "" {
		o.TextColor = d.TextColor
	}
	return o
}

type panel struct {
	title  string
	limit  float64
	series []float64
	color  string
	width  float64
}

// FrameToSVG draws the three stacked wave panels of a frame. Traces are drawn
// thin under the combined curve.
func FrameToSVG(grid wave.Grid, frame wave.Frame, traces [][]float64, opts Options) string {
	if len(grid) < 2 || frame.Len() != len(grid) {
		return ""
	}
	opts = opts.withDefaults()

	width := opts.Width
	height := opts.PanelHeight * 3

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, opts.Background)

	panels := []panel{
		{"Incident Wave", 2, frame.Incident, opts.IncidentColor, 1.5},
		{"Reflected Wave", 2, frame.Reflected, opts.ReflectedColor, 1.5},
		{"Combined Wave", 3, frame.Combined, opts.CombinedColor, 3},
	}

	for i, p := range panels {
		top := float64(i * opts.PanelHeight)
		limit := math.Max(p.limit, maxAbs(p.series))
		if i == 2 {
			for _, tr := range traces {
				limit = math.Max(limit, maxAbs(tr))
			}
		}

		fmt.Fprintf(&sb, `<g transform="translate(0,%.0f)">
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-opacity="0.3"/>
`, top, float64(opts.PanelHeight)/2, width, float64(opts.PanelHeight)/2, opts.TextColor)

		if i == 2 {
			for _, tr := range traces {
				if len(tr) != len(grid) {
					continue
				}
				writePolyline(&sb, grid, tr, limit, width, opts.PanelHeight, opts.TraceColor, 0.25)
			}
		}
		writePolyline(&sb, grid, p.series, limit, width, opts.PanelHeight, p.color, p.width)

		fmt.Fprintf(&sb, `<text x="8" y="18" fill="%s" font-family="monospace" font-size="14">%s</text>
`, opts.TextColor, p.title)
		if i == 0 && opts.Label != "" {
			fmt.Fprintf(&sb, `<text x="8" y="36" fill="%s" font-family="monospace" font-size="14">%s</text>
`, opts.TextColor, opts.Label)
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writePolyline maps grid to [0,width] and [-limit,limit] to [height,0].
func writePolyline(sb *strings.Builder, grid wave.Grid, ys []float64, limit float64, width, height int, color string, strokeWidth float64) {
	x0 := grid[0]
	span := grid[len(grid)-1] - x0
	if span == 0 {
		span = 1
	}

	fmt.Fprintf(sb, `<polyline fill="none" stroke="%s" stroke-width="%g" points="`, color, strokeWidth)
	for i, y := range ys {
		px := (grid[i] - x0) / span * float64(width)
		py := float64(height) / 2 * (1 - y/limit)
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "%.1f,%.1f", px, py)
	}
	sb.WriteString("\"/>\n")
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
