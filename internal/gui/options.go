package gui

import (
	"errors"
	"log/slog"
)

// ErrNoWindow is returned by Run in builds without the gui tag.
var ErrNoWindow = errors.New("gui: built without window support, rebuild with -tags gui")

// Options configures the window. Zero values mean a 1280×720 window at 60 fps
// with the cyberpunk theme and no frame limit.
type Options struct {
	Width     int
	Height    int
	FPS       int
	MaxFrames int
	Theme     string
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	return o
}
