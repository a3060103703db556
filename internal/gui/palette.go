package gui

import (
	"strconv"

	"github.com/san-kum/standwave/internal/viz"
)

// RGB is an opaque color in 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Palette is a viz.Theme resolved to window colors.
type Palette struct {
	Name       string
	Background RGB
	Text       RGB
	Muted      RGB
	Accent     RGB
	Incident   RGB
	Reflected  RGB
	Combined   RGB
	Trace      RGB
}

// NewPalette resolves the named theme; unknown names fall back to the
// default theme.
func NewPalette(name string) Palette {
	t := viz.GetTheme(name)
	return Palette{
		Name:       t.Name,
		Background: hexRGB(string(t.Background)),
		Text:       hexRGB(string(t.Text)),
		Muted:      hexRGB(string(t.Muted)),
		Accent:     hexRGB(string(t.Accent)),
		Incident:   hexRGB(string(t.Incident)),
		Reflected:  hexRGB(string(t.Reflected)),
		Combined:   hexRGB(string(t.Combined)),
		Trace:      hexRGB(string(t.Trace)),
	}
}

// hexRGB parses "#rrggbb". Malformed input yields white.
func hexRGB(s string) RGB {
	if len(s) != 7 || s[0] != '#' {
		return RGB{255, 255, 255}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{255, 255, 255}
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
