//go:build gui

package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/viz"
)

const (
	traceThickness    = 1
	combinedThickness = 3
)

// App renders one player into a raylib window.
type App struct {
	player *Player
	opts   Options
	colors Palette
	quit   bool
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "standwave")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and plays cfg until the window closes or q is pressed.
// The session advances exactly once per rendered frame.
func Run(cfg sim.SessionConfig, opts Options) error {
	opts = opts.withDefaults()
	player, err := NewPlayer(cfg, opts.MaxFrames, opts.Logger)
	if err != nil {
		return err
	}

	initWindow(opts)
	defer rl.CloseWindow()

	app := &App{player: player, opts: opts, colors: NewPalette(opts.Theme)}
	app.RunLoop()
	return player.Err()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
		return
	case rl.IsKeyPressed(rl.KeySpace):
		a.player.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		a.player.Restart()
	case rl.IsKeyPressed(rl.KeyT):
		a.colors = NewPalette(viz.NextTheme(a.colors.Name).Name)
	}
	a.player.Step()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(color(a.colors.Background))

	panels := Panels(rl.GetScreenWidth(), rl.GetScreenHeight())
	a.drawPanel(panels[0], "Incident Wave")
	a.drawPanel(panels[1], "Reflected Wave")
	a.drawPanel(panels[2], "Combined Wave")

	if fr, ok := a.player.Current(); ok {
		a.drawFrame(panels, fr)
	}
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawFrame(panels [3]Rect, fr sim.FrameResult) {
	s := a.player.Session()
	grid := s.Grid()
	inc, ref, comb := Limits(s.Params().Reflection)

	rl.DrawLineStrip(vectors(Project(grid, fr.Frame.Incident, inc, panels[0])), color(a.colors.Incident))
	rl.DrawLineStrip(vectors(Project(grid, fr.Frame.Reflected, ref, panels[1])), color(a.colors.Reflected))

	// Traces go under the live curve.
	trace := rl.ColorAlpha(color(a.colors.Trace), 0.6)
	for _, tr := range fr.Traces {
		drawThick(vectors(Project(grid, tr, comb, panels[2])), traceThickness, trace)
	}
	drawThick(vectors(Project(grid, fr.Frame.Combined, comb, panels[2])), combinedThickness, color(a.colors.Combined))

	rl.DrawText(fr.Label, int32(panels[0].X+panels[0].W)-110, int32(panels[0].Y)-22, 18, color(a.colors.Accent))
}

func (a *App) drawPanel(r Rect, title string) {
	muted := color(a.colors.Muted)
	rl.DrawRectangleLines(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), muted)
	mid := int32(r.Y + r.H/2)
	rl.DrawLine(int32(r.X), mid, int32(r.X+r.W), mid, rl.ColorAlpha(muted, 0.4))
	rl.DrawText(title, int32(r.X), int32(r.Y)-20, 16, color(a.colors.Text))
}

func (a *App) drawHUD() {
	s := a.player.Session()
	p := s.Params()
	text := color(a.colors.Text)
	muted := color(a.colors.Muted)

	rl.DrawText("standwave", margin, 12, 22, text)
	rl.DrawText(fmt.Sprintf("L=%g  r=%g  v=%g  f=%g  T=%s  trace: %s (%d)",
		p.Length, p.Reflection, p.Velocity, p.Frequency, period(s.Period()), s.State(), s.TraceCount()),
		170, 17, 14, muted)

	status, col := "RUNNING", text
	switch {
	case a.player.Err() != nil:
		status, col = a.player.Err().Error(), rl.Red
	case a.player.Finished():
		status, col = "FINISHED", muted
	case !a.player.Running():
		status, col = "PAUSED", muted
	}
	w := int32(rl.GetScreenWidth())
	rl.DrawText(status, w-margin-rl.MeasureText(status, 16), 15, 16, col)

	h := int32(rl.GetScreenHeight())
	rl.DrawText("[SPACE] PAUSE  [R] RESTART  [T] THEME  [Q] QUIT", margin, h-22, 14, muted)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-margin-60, h-22, 14, muted)
}

func drawThick(pts []rl.Vector2, thick float32, col rl.Color) {
	if thick <= 1 {
		rl.DrawLineStrip(pts, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(pts[i-1], pts[i], thick, col)
	}
}

func vectors(pts []Point) []rl.Vector2 {
	vs := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		vs[i] = rl.NewVector2(p.X, p.Y)
	}
	return vs
}

func color(c RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func period(T float64) string {
	if math.IsInf(T, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.3fs", T)
}
