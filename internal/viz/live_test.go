package viz

import (
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/wave"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.OutDir == "" {
		opts.OutDir = t.TempDir()
	}
	m, err := NewModel(sim.SessionConfig{
		Params:     wave.DefaultParams(),
		Resolution: 50,
		Tracing:    true,
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.Msg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick() tea.Msg { return TickMsg(time.Now()) }

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tick(), tick(), tick())

	if m.session.LastIndex() != 2 {
		t.Errorf("expected last index 2, got %d", m.session.LastIndex())
	}
	if m.current.Label != "t = 0.02" {
		t.Errorf("unexpected label %q", m.current.Label)
	}
	if m.drawn != len(m.current.Traces) {
		t.Errorf("drew %d traces, frame has %d", m.drawn, len(m.current.Traces))
	}
	if len(m.peaks) != 3 {
		t.Errorf("expected 3 peaks, got %d", len(m.peaks))
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tick(), key(" "), tick(), tick())

	if m.session.LastIndex() != 0 {
		t.Errorf("paused model advanced to %d", m.session.LastIndex())
	}
	if !strings.Contains(m.status(), "PAUSED") {
		t.Errorf("unexpected status %q", m.status())
	}

	m = send(m, key(" "), tick())
	if m.session.LastIndex() != 1 {
		t.Errorf("resumed model at %d", m.session.LastIndex())
	}
}

func TestModelMaxFrames(t *testing.T) {
	m := newTestModel(t, Options{MaxFrames: 2})
	m = send(m, tick(), tick(), tick(), tick())

	if m.session.LastIndex() != 1 {
		t.Errorf("expected to stop at 1, got %d", m.session.LastIndex())
	}
	if !strings.Contains(m.status(), "FINISHED") {
		t.Errorf("unexpected status %q", m.status())
	}
}

func TestModelTraceFreezes(t *testing.T) {
	m := newTestModel(t, Options{})
	for i := 0; i < 105; i++ {
		m = send(m, tick())
	}
	if m.session.State() != sim.Frozen {
		t.Error("expected frozen trace after one period")
	}
	if m.drawn != 100 {
		t.Errorf("expected 100 drawn traces, got %d", m.drawn)
	}
}

func TestModelThemeCycle(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, key("t"))
	if m.theme.Name != "retro" {
		t.Errorf("expected retro, got %s", m.theme.Name)
	}
	for range Themes[1:] {
		m = send(m, key("t"))
	}
	if m.theme.Name != "cyberpunk" {
		t.Errorf("expected wrap to cyberpunk, got %s", m.theme.Name)
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tick(), tick(), key("r"))

	if m.session.LastIndex() != -1 || m.hasFrame || m.drawn != 0 {
		t.Error("restart did not reset the session")
	}
	m = send(m, tick())
	if m.current.Index != 0 {
		t.Errorf("expected frame 0 after restart, got %d", m.current.Index)
	}
}

func TestModelSnapshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{OutDir: dir})
	m = send(m, key("s"))
	if m.message != "no frame yet" {
		t.Errorf("unexpected message %q", m.message)
	}

	m = send(m, tick(), tick(), key("s"))
	data, err := os.ReadFile(filepath.Join(dir, "standwave_0001.svg"))
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	if !strings.Contains(string(data), "t = 0.01") {
		t.Error("snapshot lacks the time label")
	}
}

func TestModelGIFRecording(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{OutDir: dir})
	m = send(m, key("g"), tick(), tick(), tick())
	if !m.recording || len(m.frames) != 3 {
		t.Fatalf("expected 3 captured frames, got %d", len(m.frames))
	}
	m = send(m, key("g"))
	if m.recording {
		t.Error("recording should stop")
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.gif"))
	if len(matches) != 1 {
		t.Fatalf("expected one gif, got %v", matches)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 gif frames, got %d", len(anim.Image))
	}
}

func TestModelGIFRecordingAcrossResize(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{OutDir: dir})
	m = send(m, key("g"), tick(), tea.WindowSizeMsg{Width: 200, Height: 50}, tick(), tea.WindowSizeMsg{Width: 30, Height: 20}, tick(), key("g"))
	if !strings.HasPrefix(m.message, "saved ") {
		t.Fatalf("gif not saved: %q", m.message)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.gif"))
	if len(matches) != 1 {
		t.Fatalf("expected one gif, got %v", matches)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("expected 3 gif frames, got %d", len(anim.Image))
	}
	want := anim.Image[0].Bounds()
	if want.Dx() != defaultWidth*8 {
		t.Errorf("expected width %d, got %d", defaultWidth*8, want.Dx())
	}
	for i, img := range anim.Image[1:] {
		if img.Bounds() != want {
			t.Errorf("frame %d bounds %v, want %v", i+1, img.Bounds(), want)
		}
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tick())
	view := m.View()
	for _, want := range []string{"Incident Wave", "Reflected Wave", "Combined Wave", "t = 0.00", "tracing"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tick(), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120-sidebarWidth-4 || m.live.Width != m.width {
		t.Errorf("unexpected width %d", m.width)
	}
}

func TestNewModel_Invalid(t *testing.T) {
	_, err := NewModel(sim.SessionConfig{Params: wave.Params{Length: 1, Velocity: 0, Frequency: 1}, Resolution: 10}, Options{})
	if err == nil {
		t.Error("expected error for zero velocity")
	}
}
