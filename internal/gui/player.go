package gui

import (
	"log/slog"

	"github.com/san-kum/standwave/internal/logging"
	"github.com/san-kum/standwave/internal/sim"
)

// Player steps a trace session once per rendered frame. It holds no window
// state, so the render loop and its tests share it.
type Player struct {
	cfg       sim.SessionConfig
	session   *sim.Session
	log       *slog.Logger
	maxFrames int
	next      int
	current   sim.FrameResult
	hasFrame  bool
	running   bool
	err       error
}

// NewPlayer builds the session for cfg. maxFrames <= 0 plays forever.
func NewPlayer(cfg sim.SessionConfig, maxFrames int, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = logging.Discard()
	}
	s, err := sim.NewSession(cfg, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &Player{cfg: cfg, session: s, log: log, maxFrames: maxFrames, running: true}, nil
}

// Step advances the session by one frame unless paused, finished or failed.
// It reports whether a frame was produced.
func (p *Player) Step() bool {
	if !p.running || p.Finished() || p.err != nil {
		return false
	}
	fr, err := p.session.Advance(p.next)
	if err != nil {
		p.err = err
		p.running = false
		p.log.Error("advance failed", "frame", p.next, "err", err)
		return false
	}
	p.next++
	p.current = fr
	p.hasFrame = true
	return true
}

func (p *Player) TogglePause() { p.running = !p.running }

// Restart replaces the session with a fresh one at frame 0.
func (p *Player) Restart() error {
	s, err := sim.NewSession(p.cfg, sim.WithLogger(p.log))
	if err != nil {
		p.err = err
		p.log.Error("restart failed", "err", err)
		return err
	}
	p.session = s
	p.next = 0
	p.current = sim.FrameResult{}
	p.hasFrame = false
	p.running = true
	p.err = nil
	return nil
}

func (p *Player) Finished() bool {
	return p.maxFrames > 0 && p.next >= p.maxFrames
}

// Current returns the last produced frame and whether one exists.
func (p *Player) Current() (sim.FrameResult, bool) { return p.current, p.hasFrame }

func (p *Player) Session() *sim.Session { return p.session }
func (p *Player) Running() bool         { return p.running }
func (p *Player) Err() error            { return p.err }
