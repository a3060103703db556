//go:build !gui

package gui

import "github.com/san-kum/standwave/internal/sim"

// Run reports ErrNoWindow after validating cfg.
func Run(cfg sim.SessionConfig, opts Options) error {
	if _, err := NewPlayer(cfg, opts.MaxFrames, opts.Logger); err != nil {
		return err
	}
	return ErrNoWindow
}
