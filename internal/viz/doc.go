// Package viz renders a standing-wave session live in the terminal.
//
// The view uses the Bubble Tea framework and a Braille [Canvas] per panel:
// incident, reflected and combined waves, with the trace of the first period
// drawn in a second layer under the live combined curve.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from t = 0
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	S     - Save an SVG snapshot
//	?     - Show help overlay
//
// # Recording
//
// GIF recordings and SVG snapshots are written to Options.OutDir.
package viz
