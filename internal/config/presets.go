package config

import "sort"

// Presets are classroom set-ups keyed by name. They only set the physical
// parameters; driver settings come from DefaultConfig.
var Presets = map[string]*Config{
	"open": {
		Length: 1, Reflection: 1, Velocity: 1, Frequency: 1,
	},
	"fixed": {
		Length: 1, Reflection: -1, Velocity: 1, Frequency: 1,
	},
	"matched": {
		Length: 1, Reflection: 0, Velocity: 1, Frequency: 1,
	},
	"partial": {
		Length: 1, Reflection: 0.5, Velocity: 1, Frequency: 1,
	},
	"static": {
		Length: 1, Reflection: 1, Velocity: 1, Frequency: 0, MaxTraces: 200,
	},
	"dense": {
		Length: 2, Reflection: 0.8, Velocity: 1, Frequency: 3, Resolution: 400,
	},
	"string": {
		Length: 0.65, Reflection: -1, Velocity: 143, Frequency: 110, Dt: 0.0005,
	},
}

// GetPreset returns DefaultConfig overlaid with the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Length = p.Length
	cfg.Reflection = p.Reflection
	cfg.Velocity = p.Velocity
	cfg.Frequency = p.Frequency
	if p.Resolution != 0 {
		cfg.Resolution = p.Resolution
	}
	if p.Dt != 0 {
		cfg.Dt = p.Dt
	}
	if p.MaxTraces != 0 {
		cfg.MaxTraces = p.MaxTraces
	}
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
