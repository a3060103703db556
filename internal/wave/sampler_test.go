package wave

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func unitParams() Params {
	return Params{Length: 1, Reflection: 1, Velocity: 1, Frequency: 1}
}

func assertSlice(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d samples, got %d", name, len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %.12f, want %.12f", name, i, got[i], want[i])
		}
	}
}

func TestSampleUnitScenario(t *testing.T) {
	s, err := NewSampler(unitParams(), 5)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	assertSlice(t, "grid", s.Grid(), []float64{0, 0.25, 0.5, 0.75, 1.0})

	tests := []struct {
		name      string
		t         float64
		incident  []float64
		reflected []float64
		combined  []float64
	}{
		{
			"t=0", 0,
			[]float64{0, -1, 0, 1, 0},
			[]float64{0, -1, 0, 1, 0},
			[]float64{0, -2, 0, 2, 0},
		},
		{
			"t=0.25 (node)", 0.25,
			[]float64{1, 0, -1, 0, 1},
			[]float64{-1, 0, 1, 0, -1},
			[]float64{0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := s.Sample(tt.t)
			assertSlice(t, "incident", f.Incident, tt.incident)
			assertSlice(t, "reflected", f.Reflected, tt.reflected)
			assertSlice(t, "combined", f.Combined, tt.combined)
		})
	}
}

func TestSampleClosedForm(t *testing.T) {
	p := Params{Length: 2.5, Reflection: -0.4, Velocity: 3, Frequency: 1.7}
	s, err := NewSampler(p, 37)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	k := 2 * math.Pi * p.Frequency / p.Velocity
	w := 2 * math.Pi * p.Frequency
	x := s.Grid()

	for _, tm := range []float64{0, 0.01, 0.33, 1.5, 12.75} {
		f := s.Sample(tm)
		for i := range x {
			inc := -math.Sin(k*x[i] - w*tm)
			ref := p.Reflection * math.Sin(k*(2*p.Length-x[i])-w*tm)
			if math.Abs(f.Incident[i]-inc) > tol {
				t.Errorf("t=%.2f incident[%d] = %f, want %f", tm, i, f.Incident[i], inc)
			}
			if math.Abs(f.Reflected[i]-ref) > tol {
				t.Errorf("t=%.2f reflected[%d] = %f, want %f", tm, i, f.Reflected[i], ref)
			}
		}
	}
}

func TestSampleSuperposition(t *testing.T) {
	params := []Params{
		unitParams(),
		{Length: 0.3, Reflection: 0.5, Velocity: 340, Frequency: 440},
		{Length: 10, Reflection: -1, Velocity: 2, Frequency: 0},
		{Length: 4, Reflection: 0.9, Velocity: -1, Frequency: -2},
	}

	for _, p := range params {
		s, err := NewSampler(p, 64)
		if err != nil {
			t.Fatalf("new sampler %+v: %v", p, err)
		}
		for _, tm := range []float64{0, 0.07, 1, 3.14} {
			f := s.Sample(tm)
			for i := range f.Combined {
				if f.Combined[i] != f.Incident[i]+f.Reflected[i] {
					t.Fatalf("%+v t=%v: combined[%d] != incident + reflected", p, tm, i)
				}
			}
		}
	}
}

func TestSampleDeterminism(t *testing.T) {
	p := Params{Length: 1.3, Reflection: 0.7, Velocity: 2.2, Frequency: 3.1}
	s, err := NewSampler(p, 200)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	a, b := s.Sample(0.42), s.Sample(0.42)
	c := Sample(s.Grid(), s.Mirrored(), 0.42, p)

	for i := range a.Combined {
		if a.Combined[i] != b.Combined[i] || a.Combined[i] != c.Combined[i] {
			t.Fatalf("sample %d differs between identical calls", i)
		}
	}
}

func TestSampleParallelMatchesSerial(t *testing.T) {
	p := Params{Length: 5, Reflection: 0.6, Velocity: 1.5, Frequency: 2}
	n := ParallelThreshold * 2
	s, err := NewSampler(p, n)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	f := s.Sample(0.9)
	x, refx := s.Grid(), s.Mirrored()
	k, w := p.Wavenumber(), p.AngularFrequency()
	for i := 0; i < n; i++ {
		inc := -math.Sin(k*x[i] - w*0.9)
		ref := p.Reflection * math.Sin(k*refx[i]-w*0.9)
		if math.Abs(f.Incident[i]-inc) > tol || math.Abs(f.Reflected[i]-ref) > tol {
			t.Fatalf("parallel sample %d differs from serial evaluation", i)
		}
	}
}

func TestSamplerConcurrentUse(t *testing.T) {
	s, err := NewSampler(unitParams(), 128)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}
	want := s.Sample(0.5)

	done := make(chan Frame, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- s.Sample(0.5) }()
	}
	for i := 0; i < 8; i++ {
		got := <-done
		for j := range want.Combined {
			if got.Combined[j] != want.Combined[j] {
				t.Fatalf("concurrent sample %d differs", j)
			}
		}
	}
}

func TestNewSamplerErrors(t *testing.T) {
	tests := []struct {
		name       string
		p          Params
		resolution int
		want       error
	}{
		{"zero length", Params{Length: 0, Velocity: 1, Frequency: 1}, 10, ErrInvalidLength},
		{"negative length", Params{Length: -1, Velocity: 1, Frequency: 1}, 10, ErrInvalidLength},
		{"single point", unitParams(), 1, ErrInvalidResolution},
		{"no points", unitParams(), 0, ErrInvalidResolution},
		{"zero velocity", Params{Length: 1, Velocity: 0, Frequency: 1}, 10, ErrZeroVelocity},
		{"NaN reflection", Params{Length: 1, Reflection: math.NaN(), Velocity: 1}, 10, ErrNonFinite},
		{"Inf frequency", Params{Length: 1, Velocity: 1, Frequency: math.Inf(1)}, 10, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSampler(tt.p, tt.resolution)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if s != nil {
				t.Error("expected nil sampler on error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestStaticFieldIsValid(t *testing.T) {
	p := Params{Length: 1, Reflection: 0.5, Velocity: 1, Frequency: 0}
	s, err := NewSampler(p, 16)
	if err != nil {
		t.Fatalf("zero frequency should be accepted: %v", err)
	}
	f0, f1 := s.Sample(0), s.Sample(7)
	for i := range f0.Combined {
		if f0.Combined[i] != f1.Combined[i] {
			t.Fatalf("static field changed over time at %d", i)
		}
	}
}

func TestSampleShortMirror(t *testing.T) {
	p := unitParams()
	x, err := NewGrid(p.Length, 5)
	if err != nil {
		t.Fatal(err)
	}
	refx := x.Mirror(p.Length)[:3]

	f := Sample(x, refx, 0, p)
	if f.Len() != 3 || len(f.Incident) != 3 || len(f.Reflected) != 3 {
		t.Fatalf("expected 3 samples per curve, got %d/%d/%d", len(f.Incident), len(f.Reflected), len(f.Combined))
	}
	assertSlice(t, "combined", f.Combined, []float64{0, -2, 0})

	if empty := Sample(x, nil, 0, p); empty.Len() != 0 {
		t.Errorf("expected empty frame for nil mirror, got %d samples", empty.Len())
	}
}
