package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/standwave/internal/export"
	"github.com/san-kum/standwave/internal/logging"
	"github.com/san-kum/standwave/internal/sim"
)

const (
	defaultWidth    = 60
	panelHeight     = 6
	historyCapacity = 300
	sidebarWidth    = 44
)

type TickMsg time.Time

// Options configures the live view. Zero values mean 50 fps, unlimited
// frames, the cyberpunk theme and the working directory for output files.
type Options struct {
	FPS       int
	MaxFrames int
	Theme     string
	OutDir    string
	Logger    *slog.Logger
}

// Model drives a trace session from the bubbletea tick loop. Each tick
// advances one frame unless paused; pausing simply stops calling Advance.
type Model struct {
	cfg       sim.SessionConfig
	session   *sim.Session
	opts      Options
	log       *slog.Logger
	width     int
	incident  *Canvas
	reflected *Canvas
	live      *Canvas
	traces    *Canvas
	drawn     int // traces already drawn on the trace canvas
	current   sim.FrameResult
	hasFrame  bool
	next      int
	running   bool
	theme     Theme
	peaks     []float64
	recording bool
	gifWidth  int
	frames    []*image.Paletted
	showHelp  bool
	message   string
	err       error
}

// NewModel creates the session for cfg and positions the view before frame 0.
func NewModel(cfg sim.SessionConfig, opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 50
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	session, err := sim.NewSession(cfg, sim.WithLogger(log))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		cfg:     cfg,
		session: session,
		opts:    opts,
		log:     log,
		running: true,
		theme:   GetTheme(opts.Theme),
		peaks:   make([]float64, 0, historyCapacity),
	}
	m.resize(defaultWidth)
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.message = "theme: " + m.theme.Name
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.gifWidth = m.width
				m.frames = make([]*image.Paletted, 0)
				m.message = "recording gif"
			}
		case "s":
			m.snapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := msg.Width - sidebarWidth - 4
		if w < 20 {
			w = 20
		}
		m.resize(w)
		if m.hasFrame {
			m.draw()
		}
	case TickMsg:
		if m.running && !m.finished() {
			m.step()
			if m.recording {
				m.captureFrame()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) finished() bool {
	return m.opts.MaxFrames > 0 && m.next >= m.opts.MaxFrames
}

// step advances the session by one frame and redraws the panels.
func (m *Model) step() {
	fr, err := m.session.Advance(m.next)
	if err != nil {
		m.err = err
		m.running = false
		m.log.Error("advance failed", "frame", m.next, "err", err)
		return
	}
	m.next++
	m.current = fr
	m.hasFrame = true

	m.peaks = append(m.peaks, peak(fr.Frame.Combined))
	if len(m.peaks) > historyCapacity {
		m.peaks = m.peaks[1:]
	}
	m.draw()
}

// restart discards the session and begins again at frame 0 with the same
// configuration.
func (m *Model) restart() {
	session, err := sim.NewSession(m.cfg, sim.WithLogger(m.log))
	if err != nil {
		m.err = err
		return
	}
	m.session = session
	m.next = 0
	m.hasFrame = false
	m.current = sim.FrameResult{}
	m.peaks = m.peaks[:0]
	m.resize(m.width)
	m.message = "restarted"
}

func (m *Model) resize(w int) {
	m.width = w
	m.incident = NewCanvas(w, panelHeight)
	m.reflected = NewCanvas(w, panelHeight)
	m.live = NewCanvas(w, panelHeight)
	m.traces = NewCanvas(w, panelHeight)
	m.drawn = 0
}

// limits returns the vertical half-ranges of the three panels.
func (m *Model) limits() (inc, ref, comb float64) {
	r := math.Abs(m.cfg.Params.Reflection)
	return 2, math.Max(2, r), math.Max(3, 1+r)
}

func (m *Model) draw() {
	inc, ref, comb := m.limits()
	fr := m.current

	m.incident.Clear()
	m.incident.Plot(fr.Frame.Incident, inc)
	m.reflected.Clear()
	m.reflected.Plot(fr.Frame.Reflected, ref)
	m.live.Clear()
	m.live.Plot(fr.Frame.Combined, comb)

	// The trace set only grows, so earlier snapshots stay drawn.
	for ; m.drawn < len(fr.Traces); m.drawn++ {
		m.traces.Plot(fr.Traces[m.drawn], comb)
	}
}

func (m *Model) stopRecording() {
	path, err := m.saveGIF()
	switch {
	case err != nil:
		m.message = "gif failed: " + err.Error()
		m.log.Error("gif save failed", "err", err)
	case path == "":
		m.message = "nothing recorded"
	default:
		m.message = "saved " + path
		m.log.Info("gif saved", "path", path, "frames", len(m.frames))
	}
	m.recording = false
	m.frames = nil
}

// snapshot writes the current frame with its traces as an SVG file.
func (m *Model) snapshot() {
	if !m.hasFrame {
		m.message = "no frame yet"
		return
	}
	svg := export.FrameToSVG(m.session.Grid(), m.current.Frame, m.current.Traces, export.Options{
		Background:     string(m.theme.Background),
		IncidentColor:  string(m.theme.Incident),
		ReflectedColor: string(m.theme.Reflected),
		CombinedColor:  string(m.theme.Combined),
		TraceColor:     string(m.theme.Trace),
		TextColor:      string(m.theme.Text),
		Label:          m.current.Label,
	})
	path := filepath.Join(m.opts.OutDir, fmt.Sprintf("standwave_%04d.svg", m.current.Index))
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		m.message = "snapshot failed: " + err.Error()
		m.log.Error("snapshot failed", "err", err)
		return
	}
	m.message = "saved " + path
	m.log.Info("snapshot saved", "path", path)
}

// View renders the TUI interface.
func (m Model) View() string {
	var panels strings.Builder
	title := m.theme.title()

	label := ""
	if m.hasFrame {
		label = "  " + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.current.Label)
	}
	panels.WriteString(title.Render("Incident Wave") + label + "\n")
	panels.WriteString(m.theme.curve(m.theme.Incident).Render(m.incident.String()))
	panels.WriteString(title.Render("Reflected Wave") + "\n")
	panels.WriteString(m.theme.curve(m.theme.Reflected).Render(m.reflected.String()))
	panels.WriteString(title.Render("Combined Wave") + "\n")
	panels.WriteString(RenderLayers(m.traces, m.live, m.theme.curve(m.theme.Trace), m.theme.curve(m.theme.Combined)))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, panels.String(), statsStyle.Render(m.sidebar()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) sidebar() string {
	var s strings.Builder
	p := m.session.Params()

	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Length", fmt.Sprintf("%g m", p.Length))
	row("Reflection", fmt.Sprintf("%g", p.Reflection))
	row("Velocity", fmt.Sprintf("%g m/s", p.Velocity))
	row("Frequency", fmt.Sprintf("%g Hz", p.Frequency))
	row("Period", formatPeriod(m.session.Period()))
	row("Frame", fmt.Sprintf("%d", m.session.LastIndex()))
	row("Trace", fmt.Sprintf("%s (%d)", m.session.State(), m.session.TraceCount()))
	row("Theme", m.theme.Name)

	if len(m.peaks) > 1 {
		chart := asciigraph.Plot(m.peaks, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Peak |combined|"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(StatusRecording.Render(m.err.Error()) + "\n")
	} else if m.message != "" {
		s.WriteString(valueStyle.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit\nT:Theme G:Record S:SVG ?:Help"))
	return s.String()
}

func (m Model) status() string {
	switch {
	case m.recording:
		return StatusRecording.Render("● REC")
	case m.finished():
		return StatusPaused.Render("FINISHED")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from t = 0       ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  S        - Save SVG snapshot        ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func formatPeriod(T float64) string {
	if math.IsInf(T, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.3f s", T)
}

func peak(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// captureFrame rasterizes the three panels into one GIF frame, one palette
// entry per curve. Every frame has the width the view had when recording
// started; wider canvases are clipped.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	imgW, imgH := m.gifWidth*charW, 3*panelHeight*charH
	palette := color.Palette{
		rgba(m.theme.Background),
		rgba(m.theme.Incident),
		rgba(m.theme.Reflected),
		rgba(m.theme.Trace),
		rgba(m.theme.Combined),
	}
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette)

	layers := []struct {
		canvas *Canvas
		panel  int
		index  uint8
	}{
		{m.incident, 0, 1},
		{m.reflected, 1, 2},
		{m.traces, 2, 3},
		{m.live, 2, 4},
	}
	dotW, dotH := charW/2, charH/4
	for _, l := range layers {
		offsetY := l.panel * panelHeight * charH
		dotsW := min(l.canvas.Width, m.gifWidth) * 2
		for y := 0; y < l.canvas.Height*4; y++ {
			for x := 0; x < dotsW; x++ {
				if !l.canvas.IsSet(x, y) {
					continue
				}
				for py := 0; py < dotH; py++ {
					for px := 0; px < dotW; px++ {
						img.SetColorIndex(x*dotW+px, offsetY+y*dotH+py, l.index)
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

// saveGIF encodes the captured frames and returns the file path, or "" when
// nothing was captured.
func (m *Model) saveGIF() (string, error) {
	if len(m.frames) == 0 {
		return "", nil
	}
	delay := 100 / m.opts.FPS
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	path := filepath.Join(m.opts.OutDir, fmt.Sprintf("standwave_%d.gif", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return "", err
	}
	return path, nil
}

// Run starts the live view on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
